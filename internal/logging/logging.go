// Package logging builds the zerolog logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the verbosity of the logger.
type Config struct {
	// Level is one of debug, info, warn or error.
	Level string

	// Quiet raises the level to error regardless of Level.
	Quiet bool

	// NoColor disables ANSI colors in the console output.
	NoColor bool
}

// New returns a console logger writing to w.
func New(w io.Writer, cfg Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	if cfg.Quiet && level < zerolog.ErrorLevel {
		level = zerolog.ErrorLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    cfg.NoColor,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger(), nil
}
