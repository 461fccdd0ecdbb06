// Package logging builds the slog logger shared by the commands.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a logger writing to w. Structured output uses a JSONHandler so
// diagnostics on stderr stay machine-readable next to JSON or YAML on stdout;
// otherwise a TextHandler is used.
func New(w io.Writer, structured bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init creates a logger with New and makes it the slog default.
func Init(w io.Writer, structured bool, level slog.Level) *slog.Logger {
	logger := New(w, structured, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
// Unknown strings default to LevelWarn so a plain run stays quiet.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Level resolves the effective level: verbose forces debug.
func Level(configured string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return ParseLevel(configured)
}
