package annbench

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with annbench-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogLoad logs a dataset load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, records int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"name", name,
			"records", records,
			"duration", duration,
		)
	}
}

// LogRun logs a full baseline run.
func (l *Logger) LogRun(ctx context.Context, queries, sampled int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "baseline run failed",
			"queries", queries,
			"sampled", sampled,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "baseline run completed",
			"queries", queries,
			"sampled", sampled,
			"duration", duration,
		)
	}
}

// LogWrite logs a result write operation.
func (l *Logger) LogWrite(ctx context.Context, name string, rows int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "write completed",
			"name", name,
			"rows", rows,
			"duration", duration,
		)
	}
}
