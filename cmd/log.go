package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

func newLogger(w io.Writer, debug, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// newFileLogger logs to path, or nowhere if path is empty. The terminal
// belongs to the UI, so interactive mode never logs to stderr.
func newFileLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		return newLogger(io.Discard, debug, true), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(f, debug, true), func() { _ = f.Close() }, nil
}
