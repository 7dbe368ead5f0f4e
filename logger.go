package appendix

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with appendix-specific helpers.
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

// WithSubArenaID adds a sub-arena id field to the logger.
func (l *Logger) WithSubArenaID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("sub_arena_id", id),
	}
}

// LogRegister logs the registration of a fresh sub-arena.
func (l *Logger) LogRegister(id uint64) {
	l.Debug("sub-arena registered", "id", id)
}

// LogRelocate logs a relocate-on-write of one value across sub-arenas.
func (l *Logger) LogRelocate(fromID uint64, fromIndex int, toID uint64, toIndex int) {
	l.Debug("value relocated",
		"from_id", fromID,
		"from_index", fromIndex,
		"to_id", toID,
		"to_index", toIndex,
	)
}

// LogMerge logs the merge of two lineages.
func (l *Logger) LogMerge(subArenas int) {
	l.Debug("lineages merged", "sub_arenas", subArenas)
}

// LogRelease logs the bulk teardown of a lineage.
func (l *Logger) LogRelease(subArenas, values int) {
	l.Debug("lineage released",
		"sub_arenas", subArenas,
		"values", values,
	)
}
