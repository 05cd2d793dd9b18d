// Package logging provides structured JSON logging for the auth service.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup creates a configured slog.Logger tagged with service metadata.
// If w is nil, writes to os.Stderr.
func Setup(service, environment string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if environment == "development" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("environment", environment),
	)
}
