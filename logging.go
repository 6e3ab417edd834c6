package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the process-wide logger. Components derive children from it with
// componentLogger so every line carries the emitting component.
var logger = newLogger(os.Stderr, false)

func newLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setupLogging replaces the global logger; call before building components
func setupLogging(debug bool) {
	logger = newLogger(os.Stderr, debug)
}

func componentLogger(component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func debugLog(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}
