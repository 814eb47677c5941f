// Package logging configures the process-wide structured logger.
//
// Janus logs through log/slog; components derive their own loggers with
// slog.Default().With("component", ...). Setup installs a handler matching
// the telemetry configuration as the process default.
package logging

import (
	"io"
	"log/slog"
	"os"

	"mercator-hq/janus/pkg/config"
)

// Setup builds a slog.Logger from the logging configuration and installs it
// as the process default. It returns the logger for direct use.
func Setup(cfg *config.LoggingConfig) *slog.Logger {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit output writer, for tests.
func SetupWithWriter(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a configuration level string to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
