package logger

import (
	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
)

// NoopLogger discards every entry. Selected when the logger output is
// configured as "none", e.g. for load tests where log volume would skew
// the numbers.
type NoopLogger struct {
	level core.LogLevel
}

// NewNoopLogger creates a logger that drops everything
func NewNoopLogger() core.Logger {
	return &NoopLogger{level: core.LogLevelInfo}
}

// NewFromConfig picks the logger implementation for the configured output
func NewFromConfig(output, level string, isProduction bool) core.Logger {
	if output == "none" {
		return NewNoopLogger()
	}
	l := NewZapLogger(isProduction)
	l.SetLevel(ParseLevel(level))
	return l
}

// SetLevel records the level; no output is affected
func (l *NoopLogger) SetLevel(level core.LogLevel) {
	l.level = level
}

// GetLevel returns the recorded level
func (l *NoopLogger) GetLevel() core.LogLevel {
	return l.level
}

// Debug drops the entry
func (l *NoopLogger) Debug(string, map[string]any) {}

// Info drops the entry
func (l *NoopLogger) Info(string, map[string]any) {}

// Warn drops the entry
func (l *NoopLogger) Warn(string, map[string]any) {}

// Error drops the entry
func (l *NoopLogger) Error(string, map[string]any) {}

// Flush has nothing to drain
func (l *NoopLogger) Flush() error {
	return nil
}
