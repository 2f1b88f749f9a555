// Package logger builds the process-wide *slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG. Production (prod): JSON at INFO.
func Setup(env string) *slog.Logger {
	return New(env, os.Stdout)
}

// New is Setup with an explicit destination.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
