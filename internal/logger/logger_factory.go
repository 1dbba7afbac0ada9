package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"sechelper/internal/config"
)

const appName = "sechelper"

var levels = map[config.LogLevel]slog.Level{
	config.LogLevelDebug: slog.LevelDebug,
	config.LogLevelInfo:  slog.LevelInfo,
	config.LogLevelWarn:  slog.LevelWarn,
	config.LogLevelError: slog.LevelError,
}

// NewAppLogger builds the process logger on stderr. Stdout carries command output
// such as fetched transactions.
func NewAppLogger(cfg config.LoggerConfig) (AppLogger, error) {
	return NewAppLoggerTo(cfg, os.Stderr)
}

// NewAppLoggerTo builds a logger writing to out and installs it as the slog default.
func NewAppLoggerTo(cfg config.LoggerConfig, out io.Writer) (AppLogger, error) {
	level, ok := levels[config.LogLevel(strings.ToLower(string(cfg.Level)))]
	if !ok {
		return nil, fmt.Errorf("logger setup failed: unsupported logger level: %s", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: renderStringers}
	var handler slog.Handler
	switch config.LogFormat(strings.ToLower(string(cfg.Format))) {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	case config.LogFormatText:
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("logger setup failed: unsupported output format: %s", cfg.Format)
	}

	l := slog.New(handler).With("app", appName)
	slog.SetDefault(l)
	return NewSlogAdapter(l), nil
}

// NewDiscardLogger returns a logger that writes nothing. Used by tests and one-shot helpers.
func NewDiscardLogger() AppLogger {
	return NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// renderStringers logs domain value objects (addresses, heights, hashes) by their
// String form. Their fields are unexported, so the JSON handler would print {}.
func renderStringers(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	switch v := a.Value.Any().(type) {
	case error:
		return slog.String(a.Key, v.Error())
	case fmt.Stringer:
		return slog.String(a.Key, v.String())
	}
	return a
}
