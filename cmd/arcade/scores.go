package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arcade/internal/registry"
	"github.com/vovakirdan/paddle-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show best rounds for a game",
	Long: `Display the best rounds and overall stats for the specified game.
Rounds are ranked by score, then by the fastest ball reached.

Examples:
  arcade scores pong
  arcade scores paddleslap --limit 20
  arcade scores pong --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all rounds for the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRounds(gameID); err != nil {
			return err
		}
		logger.Info("rounds cleared", "game", gameID)
		return nil
	}

	rounds, err := store.TopRounds(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Rounds - %s\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-8s  %-5s  %s\n", "Rank", "Score", "Won", "Peak", "Hits", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-8s  %-5s  %s\n", "----", "-----", "---", "----", "----", "----")

	for i, r := range rounds {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-7s  %-4s  %-8.1f  %-5d  %s\n",
			i+1,
			fmt.Sprintf("%d-%d", r.Score, r.Opponent),
			won,
			r.PeakSpeed,
			r.Collisions,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  Wins: %d  Best: %d  Peak: %.1f c/s  Avg length: %.0f ticks\n",
		stats.Rounds, stats.Wins, stats.BestScore, stats.PeakSpeed, stats.AvgTicks)
	return nil
}
