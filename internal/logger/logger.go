package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	verbose     bool
	file        *os.File
}

// New builds a Logger over w without a backing file.
func New(w io.Writer, verbose bool) *Logger {
	l := &Logger{}
	l.setOutput(w, verbose)
	return l
}

func (l *Logger) Init(logPath string, console io.Writer, verbose bool) error {
	if console == nil {
		console = os.Stdout
	}
	if logPath == "" {
		l.setOutput(console, verbose)
		return nil
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.file = file
	l.setOutput(io.MultiWriter(file, console), verbose)
	return nil
}

func (l *Logger) setOutput(w io.Writer, verbose bool) {
	l.infoLogger = log.New(w, "INFO:  ", log.Ldate|log.Ltime)
	l.warnLogger = log.New(w, "WARN:  ", log.Ldate|log.Ltime)
	l.errorLogger = log.New(w, "ERROR: ", log.Ldate|log.Ltime)
	l.debugLogger = log.New(w, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	l.verbose = verbose
}

func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) Info(v ...any) {
	l.infoLogger.Println(v...)
}

func (l *Logger) Infof(format string, v ...any) {
	l.infoLogger.Printf(format, v...)
}

func (l *Logger) Warn(v ...any) {
	l.warnLogger.Println(v...)
}

func (l *Logger) Warnf(format string, v ...any) {
	l.warnLogger.Printf(format, v...)
}

func (l *Logger) Error(v ...any) {
	l.errorLogger.Println(v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.errorLogger.Printf(format, v...)
}

// Debug output is dropped unless the logger is verbose.
func (l *Logger) Debug(v ...any) {
	if l.verbose {
		l.debugLogger.Println(v...)
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.verbose {
		l.debugLogger.Printf(format, v...)
	}
}
