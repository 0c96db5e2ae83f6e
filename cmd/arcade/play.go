package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arcade/internal/platform/tui"
	"github.com/vovakirdan/paddle-arcade/internal/registry"
	"github.com/vovakirdan/paddle-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  W/S, Up/Down - Move paddle
  Space        - Serve
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Quit (when paused or over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, weaker CPU, grows to max
  normal - Starts at 30% difficulty
  hard   - Starts at 70% difficulty
  fixed  - No progression, stays at the config's initial level

Examples:
  arcade play pong
  arcade play paddleslap --difficulty easy
  arcade play pong --seed 42 --sound
  arcade play pong --config ./my-pong.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	opts, closeSound := gameOptions(flagDifficulty)
	defer closeSound()

	game, err := registry.Create(gameID, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Debug("starting game", "game", gameID, "difficulty", flagDifficulty, "seed", flagSeed)
	if err := tui.Run(game, store, runtimeConfig(), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
