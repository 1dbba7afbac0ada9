// Package logger provides the structured logger shared by every component of the watcher.
package logger

// Attribute keys used across components, so log queries can rely on them.
const (
	KeyComponent = "component"
	KeyDetector  = "detector"
	KeyHeight    = "height"
	KeyError     = "error"
)

// AppLogger is a leveled key/value logger. Args alternate keys and values like log/slog.
type AppLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) AppLogger
}
