// Package logging configures the process-wide zerolog logger used for
// diagnostics (skipped files, reused clones, per-file failures).
// User-facing command output does not go through here.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger setup.
type Options struct {
	// Debug enables debug level output with caller information.
	Debug bool
	// Verbose enables info level output.
	Verbose bool
	// Quiet restricts output to errors.
	Quiet bool
	// NoColor disables ANSI colors in the console writer.
	NoColor bool
	// Out is the destination. Defaults to os.Stderr.
	Out io.Writer
}

// Setup configures the global logger.
func Setup(opts Options) {
	level := zerolog.WarnLevel
	switch {
	case opts.Debug:
		level = zerolog.DebugLevel
	case opts.Quiet:
		level = zerolog.ErrorLevel
	case opts.Verbose:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05.000",
		NoColor:    opts.NoColor,
	}

	logger := zerolog.New(writer).With().Timestamp().Logger()
	if opts.Debug {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
}

// Logger returns a logger tagged with the given component name.
// Call it at use time, not at package init, so Setup takes effect.
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Operation logs the start of an operation at debug level and returns a
// function that logs its completion with the elapsed time.
func Operation(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("operation completed")
	}
}
