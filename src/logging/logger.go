package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, pretty
	// Output defaults to stdout
	Output io.Writer
}

// Setup initializes the global logger. An unknown level falls back to info.
func Setup(cfg Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set time format
	zerolog.TimeFieldFormat = time.RFC3339

	// Set output format
	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	// Create global logger
	log.Logger = zerolog.New(output).With().Timestamp().Str("service", "qna-web-app").Logger()
}

// NewLogger creates a component-specific logger
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ComponentLogger returns a logger for a specific component with request ID
func ComponentLogger(component, requestID string) zerolog.Logger {
	ctx := log.With().Str("component", component)
	if requestID != "" {
		ctx = ctx.Str("request_id", requestID)
	}
	return ctx.Logger()
}
