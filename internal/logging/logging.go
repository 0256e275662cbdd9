package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the service logger. Development gets a readable console
// writer, production gets JSON lines.
func New(environment, level string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if environment != "production" && environment != "release" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	logger := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()

	// Point the global logger at the same sink for libraries that use it.
	log.Logger = logger

	return logger
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
