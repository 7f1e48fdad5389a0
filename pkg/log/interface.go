// Package log provides a structured logging interface for xaigo
// explainability operations.
//
// This package defines a minimal, slog-compatible logging interface that
// allows for flexible implementation switching while providing structured
// logging tailored to attribution pipelines. The interface integrates with
// Go's standard log/slog package and the cockroachdb/errors stack traces
// emitted by pkg/errors.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ExplainerKey, "Lime",
//	    log.ComponentKey, "lime",
//	)
//	logger.Info("explanation started",
//	    log.OperationKey, "explain",
//	    log.InputsKey, 8,
//	    log.NbSamplesKey, 150,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface supports method chaining through the With method, allowing
// creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// The advisory warnings of pkg/errors are routed here when a logger
	// is installed as the warning handler.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is provided via log.ErrAttr, stack trace
	// information is extracted by the ErrFmtHandler.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given
	// level. Useful to avoid expensive field construction for records
	// that would be dropped.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
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
