// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for the agent binary.
//
// # Architecture
//
// The logger wraps slog and, when file logging is enabled, fans events out
// to stderr and a JSON log file simultaneously using samber/slog-multi
// rather than writing to both by hand. The stderr stream is text when
// stderr is a terminal and JSON otherwise:
//
//	┌───────────────────────────────────────────────────┐
//	│                      Logger                        │
//	│  ┌──────────────┐          ┌──────────────────┐    │
//	│  │ stderr        │  fanout  │  file (JSON)     │    │
//	│  └──────────────┘          └──────────────────┘    │
//	└───────────────────────────────────────────────────┘
//
// # Thread Safety
//
// Logger is safe for concurrent use; the underlying slog.Logger is
// thread-safe and Close is idempotent.
//
// # Security Considerations
//
// This package does not redact sensitive data. Callers must avoid logging
// percept payloads that could reveal configuration secrets (none exist in
// this domain today, but future environment option values may).
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

// Level is the logging severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger. The zero value logs Debug+ to stderr only
// (LevelDebug is the zero Level).
type Config struct {
	// Level is the minimum level that will be emitted.
	Level Level
	// JSONFile, if non-nil, receives a second JSON-formatted stream of every
	// record in addition to the stderr stream.
	JSONFile io.Writer
	// RunID is attached as a constant attribute to every record, so a single
	// run's log lines can be grepped out of a shared file.
	RunID string
}

// Logger wraps an *slog.Logger with a Close method for the optional file sink.
type Logger struct {
	mu     sync.Mutex
	slog   *slog.Logger
	closer io.Closer
}

// New constructs a Logger per cfg.
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var stderrHandler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		stderrHandler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		stderrHandler = slog.NewJSONHandler(os.Stderr, opts)
	}

	var handler slog.Handler = stderrHandler
	var closer io.Closer
	if cfg.JSONFile != nil {
		fileHandler := slog.NewJSONHandler(cfg.JSONFile, opts)
		handler = slogmulti.Fanout(stderrHandler, fileHandler)
		if c, ok := cfg.JSONFile.(io.Closer); ok {
			closer = c
		}
	}

	base := slog.New(handler)
	if cfg.RunID != "" {
		base = base.With("run_id", cfg.RunID)
	}

	return &Logger{slog: base, closer: closer}
}

// Default returns an Info-level, stderr-only logger.
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a Logger that attaches the given key/value pairs to every
// subsequent record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), closer: l.closer}
}

// Slog exposes the underlying *slog.Logger for packages that accept one
// directly (e.g. passing a request-scoped logger into context).
func (l *Logger) Slog() *slog.Logger { return l.slog }

// Close flushes and closes the file sink, if one was configured. Safe to
// call multiple times and safe to call on a logger with no file sink.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

type ctxKey struct{}

// WithContext attaches l to ctx so deeply-nested calls can retrieve it via
// FromContext without threading a *Logger through every signature.
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger attached by WithContext, or Default() if
// none was attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}
