package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel accepts debug, info, warn or error.
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

// NewLogger returns a text logger writing to w.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// OpenLogger picks the log destination: the configured file, stderr in plain mode,
// otherwise nowhere, since the TUI owns the terminal. Call the returned func on exit.
func OpenLogger(cfg Config) (*slog.Logger, func() error, error) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	switch {
	case cfg.LogFile != "":
		if dir := filepath.Dir(cfg.LogFile); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	case cfg.Plain:
		w = os.Stderr
	}
	logger, err := NewLogger(w, cfg.LogLevel)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}
