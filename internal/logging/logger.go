// Package logging wraps charmbracelet/log with the process-wide logger used
// by gomdfmt and helpers for carrying a logger through a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide logger.
var (
	mu            sync.RWMutex
	defaultLogger *log.Logger
)

// ParseLevel maps a level name to a log level. Unknown names, including the
// empty string, map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to standard error at the given level
// ("debug", "info", "warn" or "error").
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(level),
		Prefix: "gomdfmt",
	})
}

// NewInteractive returns an info-level logger for commands run from a
// terminal. It omits the prefix so messages read as plain output.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level: log.InfoLevel,
	})
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	if logger != nil {
		return logger
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
