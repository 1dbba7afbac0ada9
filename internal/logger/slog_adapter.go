package logger

import (
	"context"
	"log/slog"
)

type slogLogger struct {
	base *slog.Logger
}

// NewSlogAdapter exposes l as an AppLogger. A nil l means slog.Default().
func NewSlogAdapter(l *slog.Logger) AppLogger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{base: l}
}

func (l *slogLogger) log(level slog.Level, msg string, args []any) {
	l.base.Log(context.Background(), level, msg, args...)
}

// Debug logs at slog.LevelDebug.
func (l *slogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }

// Info logs at slog.LevelInfo.
func (l *slogLogger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args) }

// Warn logs at slog.LevelWarn.
func (l *slogLogger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args) }

// Error logs at slog.LevelError.
func (l *slogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

// With returns a child logger carrying args.
func (l *slogLogger) With(args ...any) AppLogger {
	return &slogLogger{base: l.base.With(args...)}
}
