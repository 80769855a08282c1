// Package logging builds the structured logger used by missionctl: a text
// handler on the console plus an optional JSON log file, fanned out with
// slog-multi.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ErrInvalidLevel indicates an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// Options configures New.
type Options struct {
	Level   string    // debug, info, warn or error; empty means info
	File    string    // JSON log file, appended to; empty disables it
	Console io.Writer // defaults to os.Stderr
}

// Logger bundles the slog logger with its level and the resources it holds.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
	close func() error
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// New builds a Logger. Both handlers share one LevelVar so SetLevel affects
// every output.
func New(opts Options) (*Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lvl)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}
	closeFn := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path from config
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closeFn = f.Close
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		Level:  level,
		close:  closeFn,
	}, nil
}

// SetLevel changes the level of every handler.
func (l *Logger) SetLevel(level slog.Level) {
	l.Level.Set(level)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	return l.close()
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
