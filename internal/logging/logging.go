// Package logging configures zerolog for the CLI. Log output goes to
// stderr so generated messages on stdout stay pipeable.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Setup applies the global level and returns the root logger.
func Setup(level string) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(level))
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).With().Timestamp().Logger()
}

// ParseLevel maps a config string onto a zerolog level. Unknown values
// fall back to warn, which keeps a CLI quiet by default.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.WarnLevel
	}
}
