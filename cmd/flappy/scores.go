package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresTheme string
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best recorded runs, optionally for one theme.

Examples:
  flappy scores
  flappy scores --theme night
  flappy scores --limit 25
  flappy scores --clear`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresTheme, "theme", "", "Only show runs played with this theme")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the best score is kept)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintln(out, "Run history cleared.")
		return nil
	}

	return printScores(out, store, flagScoresTheme, flagScoresLimit)
}

// printScores writes the top runs, the best score and the history stats.
// The best score is shown even when the history is empty.
func printScores(out io.Writer, store *storage.Store, theme string, limit int) error {
	scores, err := store.TopScores(theme, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "all themes"
	if theme != "" {
		title = theme
	}
	fmt.Fprintf(out, "High Scores - %s\n", title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
	} else {
		// Print header
		fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Theme", "Date")
		fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %s\n", "----", "-----", "-----", "----")

		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Fprintf(out, "  %-4d  %-8d  %-8s  %s\n", i+1, entry.Score, entry.Theme, dateStr)
		}
	}

	fmt.Fprintln(out)
	best, err := store.GetInt(flappy.BestScoreKey)
	if err != nil {
		return fmt.Errorf("reading best score: %w", err)
	}
	fmt.Fprintf(out, "Best: %d\n", best)

	if len(scores) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'flappy play' to set a new high score!")
		return nil
	}
	if stats, err := store.GetStats(); err == nil && stats.Runs > 0 {
		fmt.Fprintf(out, "Runs: %d  Average: %.1f  Last played: %s\n",
			stats.Runs, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
