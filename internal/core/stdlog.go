package core

import (
	"fmt"
	"log"
	"strings"
)

// LogLevel filters StdLogger output.
type LogLevel int

// Log levels, most verbose first.
const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel maps debug, info, warn or error (any case) to a level.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// StdLogger writes service diagnostics through a standard library logger as
// "LEVEL msg key=value ...".
type StdLogger struct {
	out   *log.Logger
	level LogLevel
}

// NewStdLogger wraps out. A nil out uses log.Default().
func NewStdLogger(out *log.Logger, level LogLevel) *StdLogger {
	if out == nil {
		out = log.Default()
	}
	return &StdLogger{out: out, level: level}
}

// Debug implements Logger.
func (l *StdLogger) Debug(msg string, args ...any) { l.write(LevelDebug, "DEBUG", msg, args) }

// Info implements Logger.
func (l *StdLogger) Info(msg string, args ...any) { l.write(LevelInfo, "INFO", msg, args) }

// Warn implements Logger.
func (l *StdLogger) Warn(msg string, args ...any) { l.write(LevelWarn, "WARN", msg, args) }

// Error implements Logger.
func (l *StdLogger) Error(msg string, args ...any) { l.write(LevelError, "ERROR", msg, args) }

func (l *StdLogger) write(level LogLevel, label, msg string, args []any) {
	if level < l.level {
		return
	}
	var b strings.Builder
	b.WriteString(label)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	l.out.Print(b.String())
}
