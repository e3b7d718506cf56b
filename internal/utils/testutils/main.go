// Package testutils provides shared helpers for package tests.
package testutils

import (
	"bytes"
	"log/slog"
	"sync"
)

// Logger is a slog.Logger writing into an in-memory buffer, safe for
// concurrent use.
type Logger struct {
	*slog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewTestLogger returns a Logger capturing all levels.
func NewTestLogger() *Logger {
	logger := &Logger{}
	logger.Logger = slog.New(slog.NewTextHandler(&syncWriter{logger: logger}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return logger
}

// String returns everything logged so far.
func (l *Logger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.buf.String()
}

type syncWriter struct {
	logger *Logger
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.logger.mu.Lock()
	defer w.logger.mu.Unlock()

	return w.logger.buf.Write(p) //nolint:wrapcheck
}
