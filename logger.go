package paneflow

// DefaultLogger discards all log output. Flows fall back to it when no
// logger is configured, so logging stays optional.
type DefaultLogger struct{}

// Debug discards the message.
func (l *DefaultLogger) Debug(format string, args ...interface{}) {}

// Info discards the message.
func (l *DefaultLogger) Info(format string, args ...interface{}) {}

// Warn discards the message.
func (l *DefaultLogger) Warn(format string, args ...interface{}) {}

// Error discards the message.
func (l *DefaultLogger) Error(format string, args ...interface{}) {}

// NewDefaultLogger returns a logger that discards everything.
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}
