// Package logging wraps log/slog with the level selection and error helpers
// shared by every component of the site.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv selects the minimum level: DEBUG, INFO, WARN or ERROR.
const LevelEnv = "PORTFOLIO_LOG_LEVEL"

// Logger wraps slog.Logger so components can tag their records.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a text logger on stderr with the level taken from LevelEnv.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: getLogLevelFromEnv(),
	})
	return &Logger{slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Component returns a child logger whose records carry component=name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With("component", name)}
}

// Failure logs err at error level under msg.
func (l *Logger) Failure(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Error(msg, args...)
}

func getLogLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnv)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WrapError wraps err with a formatted context, keeping it matchable with errors.Is.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
