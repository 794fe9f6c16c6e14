package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded game and check its score",
	Long: `Load a replay written at the end of a game (see storage.replay_dir in
the config), play every move again with the recorded seed, and verify that
the final score matches.

Examples:
  tui2048 replay ~/.tui2048/replays/classic-0b6c1f0e.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap, err := replay.Run(rec)

	fmt.Printf("Variant: %s (%dx%d, seed %d)\n", rec.Variant, rec.Size, rec.Size, rec.Seed)
	if rec.GameID != "" {
		fmt.Printf("Game:    %s\n", rec.GameID)
	}
	fmt.Println()
	fmt.Println(snap.Grid)
	fmt.Println()
	fmt.Printf("Score: %d  Moves: %d/%d  Max tile: %d  State: %s\n",
		snap.Score, snap.Moves, len(rec.Moves), snap.MaxTile, snap.State)

	switch {
	case errors.Is(err, replay.ErrReplayMismatch):
		fmt.Fprintf(os.Stderr, "Mismatch: %v\n", err)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Replay verified.")
}
