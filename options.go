package appendix

import (
	"log/slog"

	"github.com/hupe1980/appendix/internal/rowstore"
)

type options struct {
	baseRowCap int
	maxRows    int
	logger     *Logger
}

// Option configures arena construction.
//
// Options apply to every sub-arena the lineage ever registers, including the
// ones created by Clone; clones inherit the options of the arena they were
// cloned from.
type Option func(*options)

// WithBaseRowCap sets the capacity of row 0. Row i holds n<<i values, so the
// base capacity also scales every later row.
//
// Values <= 0 fall back to the default (32).
func WithBaseRowCap(n int) Option {
	return func(o *options) {
		o.baseRowCap = n
	}
}

// WithMaxRows bounds the number of rows per sub-arena, capping total
// capacity at baseRowCap * (2^n - 1) values. Appending past the cap returns
// ErrCapacityExceeded.
//
// Values <= 0 fall back to the default (32).
func WithMaxRows(n int) Option {
	return func(o *options) {
		o.maxRows = n
	}
}

// WithLogger configures structured logging for arena lifecycle events
// (sub-arena registration, relocation, merge, release). Pass nil to disable
// logging.
//
// Example with JSON logging:
//
//	logger := appendix.NewJSONLogger(slog.LevelDebug)
//	arena := appendix.New[int](appendix.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		baseRowCap: rowstore.DefaultBaseCap,
		maxRows:    rowstore.DefaultMaxRows,
		logger:     NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
