package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// newLogger builds the process logger.
// Interactive commands own the terminal, so they log to the configured file
// or nowhere; the server logs to stderr and the file when one is set.
func newLogger(c config.Config, prefix string, interactive bool) (*log.Logger, func(), error) {
	var out io.Writer = os.Stderr
	if interactive {
		out = io.Discard
	}
	closeFn := func() {}

	if c.Log.File != "" {
		path := config.ExpandHome(c.Log.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log: cannot create directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log: cannot open %s: %w", path, err)
		}
		closeFn = func() { f.Close() }
		if interactive {
			out = f
		} else {
			out = io.MultiWriter(os.Stderr, f)
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           c.LogLevel(),
	})
	return logger, closeFn, nil
}
