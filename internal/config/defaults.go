package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-2048/internal/variant"
)

//go:embed defaults/tui2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Variant: variant.Default,
		},
		Storage: StorageConfig{
			DBPath:    "~/.tui2048/scores.db",
			ReplayDir: "~/.tui2048/replays",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.tui2048/tui2048.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
