package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is implemented by every logging backend used in paperscan.
// Component tags the subsystem (e.g. "driver", "strategy.enhanced") so a
// single scan's log lines can be grouped by caller tooling.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// SlogAdapter backs Logger with the standard library's structured logger,
// used for file/JSON sinks where zerolog's console writer isn't wanted.
type SlogAdapter struct {
	logger *slog.Logger
	level  LogLevel
}

func NewStructuredLogger(level LogLevel) *SlogAdapter {
	return &SlogAdapter{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: toSlogLevel(level)})),
		level:  level,
	}
}

func NewFileLogger(level LogLevel, writer io.Writer) *SlogAdapter {
	return &SlogAdapter{
		logger: slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: toSlogLevel(level)})),
		level:  level,
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogAdapter) Debug(component, message string, fields map[string]interface{}) {
	if l.level > DebugLevel {
		return
	}
	l.logWithFields(slog.LevelDebug, component, message, fields)
}

func (l *SlogAdapter) Info(component, message string, fields map[string]interface{}) {
	if l.level > InfoLevel {
		return
	}
	l.logWithFields(slog.LevelInfo, component, message, fields)
}

func (l *SlogAdapter) Warning(component, message string, fields map[string]interface{}) {
	if l.level > WarnLevel {
		return
	}
	l.logWithFields(slog.LevelWarn, component, message, fields)
}

func (l *SlogAdapter) Error(component string, err error, fields map[string]interface{}) {
	if l.level > ErrorLevel {
		return
	}

	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	l.logWithFields(slog.LevelError, component, "operation failed", fields)
}

func (l *SlogAdapter) logWithFields(level slog.Level, component, message string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, "component", component)
	for k, v := range fields {
		args = append(args, k, v)
	}
	l.logger.Log(context.Background(), level, message, args...)
}

// NoOp discards every call; the zero value of Logger callers can default to.
type NoOp struct{}

func (NoOp) Debug(string, string, map[string]interface{})   {}
func (NoOp) Info(string, string, map[string]interface{})    {}
func (NoOp) Warning(string, string, map[string]interface{}) {}
func (NoOp) Error(string, error, map[string]interface{})    {}
