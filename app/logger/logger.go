package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the application-wide logger. Handlers and packages log through it
// instead of the standard library logger.
var Log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	Log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}
