// Package config provides YAML-based configuration loading for tui2048.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/variant"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all tui2048 settings.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Player  PlayerConfig  `yaml:"player"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// GameConfig selects the rule set.
type GameConfig struct {
	Variant string `yaml:"variant"`
	Seed    int64  `yaml:"seed"` // 0 = seed from the clock
}

// PlayerConfig holds the default leaderboard name.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig locates the scores database and replay files.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	ReplayDir string `yaml:"replay_dir"` // Empty = replays are not saved
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty = stderr
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate checks that every field refers to something usable.
func (c Config) Validate() error {
	var errs []error

	if !variant.Exists(c.Game.Variant) {
		errs = append(errs, fmt.Errorf("unknown variant %q", c.Game.Variant))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path is empty"))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout %s is negative", c.SSH.IdleTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
