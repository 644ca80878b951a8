package paneflow

import (
	"fmt"
	"sync"
	"testing"
)

// TestLogger routes flow logging through the test runner.
type TestLogger struct {
	t *testing.T
}

func (l *TestLogger) Debug(format string, args ...interface{}) { l.t.Logf("[DEBUG] "+format, args...) }
func (l *TestLogger) Info(format string, args ...interface{})  { l.t.Logf("[INFO] "+format, args...) }
func (l *TestLogger) Warn(format string, args ...interface{})  { l.t.Logf("[WARN] "+format, args...) }
func (l *TestLogger) Error(format string, args ...interface{}) { l.t.Logf("[ERROR] "+format, args...) }

// captureLogger records formatted messages per level for assertions.
type captureLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{messages: map[string][]string{}}
}

func (l *captureLogger) log(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[level] = append(l.messages[level], fmt.Sprintf(format, args...))
}

func (l *captureLogger) Debug(format string, args ...interface{}) { l.log("debug", format, args...) }
func (l *captureLogger) Info(format string, args ...interface{})  { l.log("info", format, args...) }
func (l *captureLogger) Warn(format string, args ...interface{})  { l.log("warn", format, args...) }
func (l *captureLogger) Error(format string, args ...interface{}) { l.log("error", format, args...) }

func (l *captureLogger) level(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.messages[level]))
	copy(out, l.messages[level])
	return out
}
