// Package logging builds the structured loggers used across the solver.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the log output format
type Format string

const (
	// TextFormat writes key=value lines
	TextFormat Format = "text"
	// JSONFormat writes one JSON object per line
	JSONFormat Format = "json"
)

// levelSilent is above every standard level
const levelSilent = slog.Level(100)

// Config holds logger configuration
type Config struct {
	Format Format
	Level  string
	Output io.Writer // Optional, defaults to stderr
}

// New creates a logger from cfg
func New(cfg Config) *slog.Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: LevelFromString(cfg.Level)}
	if cfg.Format == JSONFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewDiscardLogger creates a logger that discards all output.
// Useful for tests or when logging should be completely suppressed.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelSilent}))
}

// LevelFromString converts a string to a slog.Level.
// Supports: debug, info, warn, error, silent (case-insensitive).
// Returns slog.LevelInfo for unrecognized strings.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "silent", "quiet", "off":
		return levelSilent
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to a Format, defaulting to text
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(JSONFormat)) {
		return JSONFormat
	}
	return TextFormat
}
