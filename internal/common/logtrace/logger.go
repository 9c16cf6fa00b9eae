// Package logtrace configures structured logging for the client and CLI.
// It integrates with zerolog for structured logging.
package logtrace

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger with Unix timestamp format.
// Configures zerolog to output to stderr with timestamps.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// NewLogger returns a structured logger writing to w, tagged with the
// component name. Used by library types that accept an injected logger.
func NewLogger(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// Disabled returns a logger that discards everything. Library types default
// to this so that logging is strictly opt-in.
func Disabled() zerolog.Logger {
	return zerolog.Nop()
}
