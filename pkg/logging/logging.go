// Package logging builds the process-wide slog logger: colored tint output for
// local development and JSON lines in production.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error"). Production loggers emit JSON.
func New(w io.Writer, level string, production bool) *slog.Logger {
	lvl := ParseLevel(level)
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, level string, production bool) *slog.Logger {
	logger := New(w, level, production)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
