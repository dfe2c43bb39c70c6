// Package logger configures the process-wide structured logger: JSON to
// stdout, level driven by the LOG_LEVEL environment variable.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Level aliases slog.Level for callers that only import this package.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var programLevel = new(slog.LevelVar)

// Setup installs the JSON handler as the slog default and returns the
// logger. The level comes from LOG_LEVEL (default INFO); an unparseable
// value falls back to INFO.
func Setup() *slog.Logger {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "INFO"
	}

	level, err := ParseLevel(levelStr)
	if err != nil {
		level = slog.LevelInfo
	}
	programLevel.Set(level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: programLevel})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// SetLevel changes the level of the installed handler at runtime.
func SetLevel(level Level) {
	programLevel.Set(level)
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
