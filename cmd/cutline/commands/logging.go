// Package commands implements the cutline subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/Sumatoshi-tech/cutline/pkg/config"
)

// newLogger builds an slog.Logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level

	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	default:
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}
