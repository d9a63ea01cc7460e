// Package logger builds the service's slog logger for a deployment environment.
package logger

import (
	"io"
	"log/slog"

	"github.com/AlenaMolokova/payhook/internal/constants"
)

// New returns a text logger for local runs and a JSON logger otherwise.
// Debug records are dropped in prod.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case constants.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case constants.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Discard is a logger that writes nowhere, used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
