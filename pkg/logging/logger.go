// Package logging provides structured logging setup for execmeter
// binaries and hosts.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/execmeter/execmeter/pkg/measure"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum severity written: trace, debug, info, warn,
	// or error.
	Level string
	// Format selects the handler: "json" (default) or "text".
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Setup builds a slog.Logger per cfg and installs it as the process
// default. Unknown level strings fall back to info.
func Setup(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level := slog.LevelInfo
	if parsed, err := measure.ParseLevel(cfg.Level); err == nil {
		level = parsed.Slog()
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
