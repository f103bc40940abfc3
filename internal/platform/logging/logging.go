// Package logging builds the zerolog loggers used across the service.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level and output format.
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// New returns a logger tagged with component. Format "console" writes
// human-readable lines, anything else writes JSON.
func New(cfg Config, component string) zerolog.Logger {
	return NewWithWriter(cfg, component, os.Stdout)
}

func NewWithWriter(cfg Config, component string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var w io.Writer = out
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}
