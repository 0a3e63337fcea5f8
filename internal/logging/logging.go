package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is the debug log level
	LevelDebug LogLevel = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

// String returns the level name as used in LOG_LEVEL.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	currentLevel LogLevel
	levelOnce    sync.Once
)

// parseLevel maps the DEBUG and LOG_LEVEL environment values to a level.
// Unrecognized values fall back to Info.
func parseLevel(debugEnv, levelEnv string) LogLevel {
	switch strings.ToLower(debugEnv) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}

	switch strings.ToLower(levelEnv) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	levelOnce.Do(func() {
		currentLevel = parseLevel(os.Getenv("DEBUG"), os.Getenv("LOG_LEVEL"))
	})
	return currentLevel
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug)
func Debug(format string, args ...interface{}) {
	if GetLevel() <= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	if GetLevel() <= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	if GetLevel() <= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	if GetLevel() <= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Fatal logs an error message and exits
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}

// Prefixed is a logger that prepends a fixed prefix to every message.
type Prefixed struct {
	prefix string
}

// Worker returns a logger whose messages are tagged with the worker number.
func Worker(id int) *Prefixed {
	return &Prefixed{prefix: fmt.Sprintf("worker %d: ", id)}
}

// Debug logs a prefixed debug message
func (p *Prefixed) Debug(format string, args ...interface{}) {
	Debug(p.prefix+format, args...)
}

// Info logs a prefixed info message
func (p *Prefixed) Info(format string, args ...interface{}) {
	Info(p.prefix+format, args...)
}

// Warn logs a prefixed warning message
func (p *Prefixed) Warn(format string, args ...interface{}) {
	Warn(p.prefix+format, args...)
}

// Error logs a prefixed error message
func (p *Prefixed) Error(format string, args ...interface{}) {
	Error(p.prefix+format, args...)
}
