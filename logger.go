package twiddle

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with twiddle-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithKind tags the logger with the structure kind.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithSize adds a size field to the logger.
func (l *Logger) WithSize(size uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogRotation logs a generation swap of a two-generation filter.
func (l *Logger) LogRotation(generation uint64, density float64) {
	l.Debug("filter rotated",
		"generation", generation,
		"density", density,
	)
}

// LogRejected logs an operation refused because of a failed precondition.
func (l *Logger) LogRejected(op string, err error) {
	l.Debug("operation rejected",
		"op", op,
		"error", err,
	)
}
