package logging

import (
	"context"
	"log/slog"
	"os"
)

// New returns the process logger: JSON slog on stderr, or a discard
// logger when quiet is set. Diagnostics go to stderr so that --list
// output on stdout stays machine-readable.
func New(quiet bool) Logger {
	if quiet {
		return NewDiscardLogger()
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
}

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
