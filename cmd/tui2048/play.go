package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/variant"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play 2048",
	Long: `Start playing locally. Without a variant (argument or --variant) a
menu lets you pick one.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  C                - Keep going after reaching the target
  Enter            - Submit score after reaching the target
  R                - New game
  Esc/B            - Back to menu
  ?                - More help
  Q/Ctrl+C         - Quit

Examples:
  tui2048 play
  tui2048 play mini
  tui2048 play --variant hard --seed 42
  tui2048 play --player alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name suggested for the leaderboard (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	start := ""
	switch {
	case len(args) == 1:
		start = args[0]
	case cmd.Flags().Changed("variant"):
		start = cfg.Game.Variant
	}
	if start != "" && !variant.Exists(start) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", start)
		fmt.Fprintln(os.Stderr, "Run 'tui2048 variants' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg, "tui2048", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	player := cfg.Player.Name
	if cmd.Flags().Changed("player") {
		player = flagPlayer
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	replayDir := ""
	if cfg.Storage.ReplayDir != "" {
		replayDir = config.ExpandHome(cfg.Storage.ReplayDir)
	}

	opts := tui.Options{
		Store:     store,
		Logger:    logger,
		Player:    player,
		Seed:      cfg.Game.Seed,
		ReplayDir: replayDir,
		Variant:   cfg.Game.Variant,
		Width:     width,
		Height:    height,
	}

	logger.Info("starting", "variant", start, "seed", cfg.Game.Seed)
	if err := tui.Run(opts, start); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
