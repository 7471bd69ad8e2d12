// Package logging builds slog loggers from a Config: text or JSON records,
// filtered by level, written to stdout, stderr or an append-only file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Open creates the logger described by cfg. The returned closer releases the
// log file and is a no-op for the standard streams.
func Open(cfg *Config) (*slog.Logger, io.Closer, error) {
	switch cfg.Output {
	case "", OutputStdout:
		return NewWriter(cfg, os.Stdout), nopCloser{}, nil
	case OutputStderr:
		return NewWriter(cfg, os.Stderr), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}
	return NewWriter(cfg, f), f, nil
}

// NewWriter creates a logger that writes to w regardless of cfg.Output.
func NewWriter(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level.ToSlogLevel(),
		AddSource: cfg.Source,
	}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) Validate() error {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	}
	return fmt.Errorf("invalid log level %q: want debug, info, warn or error", l)
}

// ToSlogLevel maps l onto slog. Unknown levels map to info.
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("invalid log format %q: want text or json", f)
}
