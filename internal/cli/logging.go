package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/playground-x/neoradio/internal/config"
)

// newLogger builds the application logger from config. quiet suppresses
// console output (used while the TUI owns the terminal); a configured log
// file still receives everything.
func newLogger(cfg *config.Config, quiet bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		} else if quiet {
			out = io.Discard
		} else {
			out = zerolog.ConsoleWriter{Out: os.Stderr}
		}
	case quiet:
		out = io.Discard
	default:
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
