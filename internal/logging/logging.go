// Package logging builds the zerolog logger shared by the player's components.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config selects the log destination and format.
type Config struct {
	Level       string    // zerolog level name; empty means info
	File        string    // append to this file; empty writes to Writer
	Writer      io.Writer // used when File is empty; nil means stderr
	PrettyPrint bool      // human-readable console output
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger tagged with a per-run session id. The returned Closer
// releases the log file, if one was opened.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if name := strings.TrimSpace(cfg.Level); name != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(name))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.Writer != nil {
		out = cfg.Writer
	}
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
		}
		out, closer = file, file
	}

	if cfg.PrettyPrint {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.File != "",
			TimeFormat: time.DateTime,
		}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
	return logger, closer, nil
}
