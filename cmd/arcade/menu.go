package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arcade/internal/core"
	"github.com/vovakirdan/paddle-arcade/internal/platform/tui"
	"github.com/vovakirdan/paddle-arcade/internal/registry"
	"github.com/vovakirdan/paddle-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to pick a difficulty and
Enter to play. After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select game
  Tab             - Best rounds
  Q               - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --difficulty hard --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	difficulty := flagDifficulty

	for {
		menuResult, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			return err
		}

		// Keep resizes and the picked preset across rounds
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		if err := playFromMenu(menuResult.GameID, difficulty, store, cfg); err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", err)
		}
	}
}

func playFromMenu(gameID, difficulty string, store *storage.Store, cfg core.RuntimeConfig) error {
	opts, closeSound := gameOptions(difficulty)
	defer closeSound()

	game, err := registry.Create(gameID, opts)
	if err != nil {
		return err
	}

	// Fresh seed for each round unless one was pinned
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger.Debug("starting game", "game", gameID, "difficulty", difficulty)
	return tui.Run(game, store, cfg, tui.WithLogger(logger))
}
