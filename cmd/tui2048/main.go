// tui2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	tui2048 play [variant]     - Play locally (menu when no variant is given)
//	tui2048 serve              - Start SSH server for remote play
//	tui2048 scores [variant]   - Show the leaderboard and recent games
//	tui2048 replay <file>      - Verify a recorded game
//	tui2048 variants           - List available rule sets
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.tui2048/config.yaml, ./configs/tui2048.yaml)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.tui2048/scores.db)
//	--variant <id>      - Rule set to use
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagVariant  string
	flagLogLevel string

	// cfg is the loaded configuration with flag overrides applied.
	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "tui2048 - the 2048 puzzle in your terminal",
	Long: `tui2048 is a terminal version of the 2048 sliding-tile puzzle.
Slide the tiles, merge equal values, and reach the target tile.

Available commands:
  play      - Play locally
  serve     - Start SSH server for remote play
  scores    - View the leaderboard
  replay    - Verify a recorded game
  variants  - Show all rule sets

Examples:
  tui2048 play
  tui2048 play mini
  tui2048 serve --ssh :2222
  tui2048 scores classic
  tui2048 replay ~/.tui2048/replays/classic-<id>.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Rule set ID (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(variantsCmd)
}

// loadConfig reads the config file and applies explicitly set flags over it.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		loaded.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		loaded.Storage.DBPath = flagDBPath
	}
	if flags.Changed("variant") {
		loaded.Game.Variant = flagVariant
	}
	if flags.Changed("log-level") {
		loaded.Log.Level = flagLogLevel
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	return nil
}
