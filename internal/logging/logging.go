// Package logging configures the zerolog logger shared by the command line
// tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Log returns the process logger.
func Log() *zerolog.Logger {
	return &log
}

// Setup replaces the process logger. level is a zerolog level name; json
// selects line-delimited JSON instead of the console format.
func Setup(w io.Writer, level string, json bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if !json {
		out := w
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = out
			cw.TimeFormat = "15:04:05.000"
			cw.FormatLevel = formatLevel
		})
	}
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

func formatLevel(i interface{}) string {
	l, ok := i.(string)
	if !ok || l == "" {
		return "???"
	}
	switch l {
	case "trace":
		return "TRC"
	case "debug":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error":
		return "ERR"
	case "fatal":
		return "FTL"
	case "panic":
		return "PNC"
	}
	return strings.ToUpper(l)
}
