package logger

import (
	"io"
)

// LoggerInterface defines the interface for logging
type LoggerInterface interface {
	Info(v ...any)
	Infof(format string, v ...any)
	Warn(v ...any)
	Warnf(format string, v ...any)
	Error(v ...any)
	Errorf(format string, v ...any)
	Debug(v ...any)
	Debugf(format string, v ...any)
	Close() error
}

// NewLogger creates a new logger instance writing to logPath and console.
// An empty logPath logs to console only.
func NewLogger(logPath string, console io.Writer, verbose bool) (LoggerInterface, error) {
	logger := &Logger{}
	if err := logger.Init(logPath, console, verbose); err != nil {
		return nil, err
	}
	return logger, nil
}

// Noop returns a logger that discards everything.
func Noop() LoggerInterface {
	return New(io.Discard, false)
}
