// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Output is formatted by charmbracelet/log.
// The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the level name as accepted by ParseLevel.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a name ("off", "normal", "verbose", or the aliases
// "quiet", "info", "debug") to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "normal", "info", "":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	}
	return LevelNormal, fmt.Errorf("unknown log level %q", s)
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	l := &Logger{
		level: level,
		out: log.NewWithOptions(out, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		}),
	}
	l.out.SetLevel(charmLevel(level))
	return l
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.out.SetLevel(charmLevel(level))
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelVerbose {
		l.out.Debugf(format, args...)
	}
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelNormal {
		l.out.Infof(format, args...)
	}
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelNormal {
		l.out.Warnf(format, args...)
	}
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelNormal {
		l.out.Errorf(format, args...)
	}
}

func charmLevel(level Level) log.Level {
	switch level {
	case LevelVerbose:
		return log.DebugLevel
	case LevelNormal:
		return log.InfoLevel
	default:
		// Off is enforced by the level checks above; keep the backend quiet too.
		return log.FatalLevel
	}
}
