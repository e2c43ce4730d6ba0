// Package logging builds the line-oriented logger the monitor writes to.
//
// Every line starts with a category prefix instead of a timestamp:
//
//	LOG: Window 0x1 created
//	WARNING: X11 error: BadWindow (invalid Window parameter) (...)
//	FATAL ERROR: Failed to open X11 display
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Prefixes written in front of each line
const (
	PrefixInfo  = "LOG:"
	PrefixWarn  = "WARNING:"
	PrefixError = "ERROR:"
	PrefixFatal = "FATAL ERROR:"
)

// New returns a logger writing prefixed lines to w
func New(w io.Writer) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:         w,
		NoColor:     true,
		PartsOrder:  []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: formatLevel,
	}
	return zerolog.New(writer).Level(zerolog.InfoLevel)
}

func formatLevel(i interface{}) string {
	level, _ := i.(string)
	switch level {
	case zerolog.LevelWarnValue:
		return PrefixWarn
	case zerolog.LevelErrorValue:
		return PrefixError
	case zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return PrefixFatal
	default:
		return PrefixInfo
	}
}

// Fatal writes a fatal line without exiting; the caller owns the exit code.
func Fatal(logger zerolog.Logger) *zerolog.Event {
	return logger.WithLevel(zerolog.FatalLevel)
}
