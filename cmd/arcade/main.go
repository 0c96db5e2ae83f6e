// arcade is a terminal arcade of bouncing-ball games.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show best rounds for a game
//	arcade sim               - Run a headless ball simulation
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//	--config <path> - Custom game config YAML
//	--difficulty    - Difficulty preset: easy, normal, hard, fixed
//	--sound         - Play collision and score blips
//	--verbose       - Debug logging
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/paddle-arcade/internal/audio"
	"github.com/vovakirdan/paddle-arcade/internal/core"
	"github.com/vovakirdan/paddle-arcade/internal/registry"

	// Import games to register them
	_ "github.com/vovakirdan/paddle-arcade/internal/games/paddleslap"
	_ "github.com/vovakirdan/paddle-arcade/internal/games/pong"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "arcade",
	ReportTimestamp: true,
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Paddle Arcade - bouncing-ball games in your terminal",
	Long: `Paddle Arcade is a terminal gaming platform built around a small
2D ball physics engine: walls, paddles, speed-ups and ball-to-ball hits.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View best rounds
  sim      - Run the physics headless and print a report

Examples:
  arcade list
  arcade play pong --difficulty hard
  arcade menu --sound
  arcade serve --ssh :2222
  arcade sim --seed 7 --ticks 6000`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play collision and score sounds")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameOptions builds the options every game is created with.
// The returned cleanup closes the speaker, if one was opened.
func gameOptions(difficulty string) (registry.Options, func()) {
	opts := registry.Options{
		ConfigPath: flagConfig,
		Difficulty: difficulty,
	}
	if !flagSound {
		return opts, func() {}
	}

	player := audio.NewPlayer(0.5)
	if err := player.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return opts, func() {}
	}
	opts.Sound = player
	return opts, player.Close
}
