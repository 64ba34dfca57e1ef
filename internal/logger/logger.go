// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides a small levelled logger for diagnostics that do
// not belong on the command's progress output.
package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level is a logging severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts "debug", "info", "warn"/"warning" or "error" to a
// Level. Anything else is InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger is the logging interface used across happyref.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

type standardLogger struct {
	logger *log.Logger
	level  Level
}

// New returns a Logger that writes timestamped, level-tagged lines to w
// and drops messages below level.
func New(w io.Writer, level Level) Logger {
	return &standardLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// NewNoOpLogger returns a Logger that discards everything (for tests).
func NewNoOpLogger() Logger {
	return &standardLogger{logger: log.New(io.Discard, "", 0), level: ErrorLevel + 1}
}

func (l *standardLogger) Debug(format string, v ...any) { l.log(DebugLevel, format, v...) }
func (l *standardLogger) Info(format string, v ...any)  { l.log(InfoLevel, format, v...) }
func (l *standardLogger) Warn(format string, v ...any)  { l.log(WarnLevel, format, v...) }
func (l *standardLogger) Error(format string, v ...any) { l.log(ErrorLevel, format, v...) }

func (l *standardLogger) log(level Level, format string, v ...any) {
	if level < l.level {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}
