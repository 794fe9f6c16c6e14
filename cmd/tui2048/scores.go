package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/variant"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard for a variant",
	Long: `Display the leaderboard (each player's best) and the most recent
statistics for a variant. Defaults to the configured variant.

Examples:
  tui2048 scores
  tui2048 scores mini --limit 20
  tui2048 scores -i          # Browse all variants interactively
  tui2048 scores hard --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", storage.DefaultLeaderboardSize, "Number of entries to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive leaderboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the variant")
}

func runScores(_ *cobra.Command, args []string) {
	variantID := cfg.Game.Variant
	if len(args) == 1 {
		variantID = args[0]
	}

	v, err := variant.Get(variantID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variantID)
		fmt.Fprintln(os.Stderr, "Run 'tui2048 variants' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(v.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scores for %s cleared.\n", v.Title)
		return

	case flagInteractive:
		if err := tui.RunScoreboard(store, v.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	entries, err := store.Leaderboard(v.ID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Leaderboard - %s\n", v.Title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores submitted yet.")
	} else {
		fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
		fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "-----", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-20s  %-10d  %s\n", i+1, e.Player, e.Score, e.UpdatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetVariantStats(v.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if stats.GamesCount == 0 {
		fmt.Printf("Play 'tui2048 play %s' to set the first score!\n", v.ID)
		return
	}

	best, err := store.HighScore(v.ID)
	if err != nil {
		best = stats.HighScore
	}
	fmt.Printf("Games: %d  Best: %d  Average: %.0f  Best tile: %d  Last played: %s\n",
		stats.GamesCount, best, stats.AvgScore, stats.BestTile, stats.LastPlayed.Format("2006-01-02 15:04"))

	recent, err := store.TopScores(v.ID, 3)
	if err == nil && len(recent) > 0 {
		fmt.Println()
		fmt.Println("Top games:")
		for _, e := range recent {
			name := e.Player
			if name == "" {
				name = "-"
			}
			fmt.Printf("  %-10d  tile %-6d  %4d moves  %-20s  %s\n", e.Score, e.MaxTile, e.Moves, name, e.GameID)
		}
	}
}
