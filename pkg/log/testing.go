// Package log provides testing utilities for structured logging.
//
// TestLogger captures log output in memory so tests can verify what the
// pipeline logged without touching the process-wide slog default.

package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// TestLogger is a Logger implementation designed for testing.
// It captures all log messages in memory for later inspection.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields []any
}

// NewTestLogger creates a new TestLogger with the specified minimum level
// and returns the buffer containing captured output.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{buffer: buffer, level: level}, buffer
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) {
	if t.level <= LevelDebug {
		t.writeLog("DEBUG", msg, fields...)
	}
}

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) {
	if t.level <= LevelInfo {
		t.writeLog("INFO", msg, fields...)
	}
}

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) {
	if t.level <= LevelWarn {
		t.writeLog("WARN", msg, fields...)
	}
}

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) {
	if t.level <= LevelError {
		t.writeLog("ERROR", msg, fields...)
	}
}

// With implements Logger.With.
func (t *TestLogger) With(fields ...any) Logger {
	combined := make([]any, 0, len(t.fields)+len(fields))
	combined = append(combined, t.fields...)
	combined = append(combined, fields...)
	return &TestLogger{buffer: t.buffer, level: t.level, fields: combined}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return t.level <= level
}

func (t *TestLogger) writeLog(level, msg string, fields ...any) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	all := make([]any, 0, len(t.fields)+len(fields))
	all = append(all, t.fields...)
	all = append(all, fields...)
	for i := 0; i+1 < len(all); i += 2 {
		b.WriteString(fmt.Sprintf(" %v=%v", all[i], all[i+1]))
	}
	b.WriteString("\n")
	t.buffer.WriteString(b.String())
}
