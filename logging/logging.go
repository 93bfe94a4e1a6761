// Package logging builds the process logger. The TUI owns the terminal, so
// logs go to a file when one is configured and are discarded otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Options struct {
	Level string
	// File is appended to when set. Writer is used when File is empty.
	File   string
	Writer io.Writer
}

// New returns the logger and a close function that must be called on exit.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	noop := func() error { return nil }
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, handlerOpts)), f.Close, nil
	}
	if opts.Writer != nil {
		return slog.New(slog.NewTextHandler(opts.Writer, handlerOpts)), noop, nil
	}
	return slog.New(slog.DiscardHandler), noop, nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
