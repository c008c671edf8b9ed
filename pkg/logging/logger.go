package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
)

// Options configures New.
type Options struct {
	// Level is the minimum console level (trace, debug, info, warn, error)
	Level string
	// Dir holds {hostname}.log; empty disables the file sink
	Dir string
	// Console defaults to os.Stderr
	Console io.Writer
	// NoColor disables ANSI colours on the console
	NoColor bool
}

// New builds a logger writing to the console and, when Dir is set, to a
// rotated JSON file. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	level := ParseLevel(opts.Level)

	handlers := []slog.Handler{NewConsoleHandler(console, host, level, !opts.NoColor)}
	var closer io.Closer = nopCloser{}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, host+".log"),
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		fileLevel := slog.LevelInfo
		if level > fileLevel {
			fileLevel = level
		}
		handlers = append(handlers, slog.NewJSONHandler(writer, &slog.HandlerOptions{
			AddSource:   true,
			Level:       fileLevel,
			ReplaceAttr: replaceLevel,
		}))
		closer = writer
	}

	return slog.New(newFanout(handlers...)), closer, nil
}

// Named returns a child logger reporting name in every record
func Named(l *slog.Logger, name string) *slog.Logger {
	return l.With(NameKey, name)
}

// Trace logs at LevelTrace
func Trace(ctx context.Context, l *slog.Logger, msg string, args ...any) {
	l.Log(ctx, LevelTrace, msg, args...)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 100}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends every record to all handlers that accept its level.
type fanout struct {
	handlers []slog.Handler
}

func newFanout(handlers ...slog.Handler) *fanout {
	return &fanout{handlers: handlers}
}

func (f *fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return newFanout(next...)
}

func (f *fanout) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return newFanout(next...)
}
