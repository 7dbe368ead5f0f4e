// Package rowstore implements the growth-row storage backing an arena.
//
// Elements are stored in rows of geometrically increasing capacity. Row i
// holds baseCap<<i elements and is allocated at full capacity on first use,
// so a row's backing array is never reallocated. The address of an element
// therefore never changes after Append returns, no matter how many elements
// are appended later.
package rowstore

import (
	"errors"
	"fmt"
)

const (
	// DefaultBaseCap is the capacity of row 0.
	DefaultBaseCap = 32
	// DefaultMaxRows bounds the number of rows per store.
	DefaultMaxRows = 32
)

// ErrCapacityExceeded is returned by Append once every configured row is full.
var ErrCapacityExceeded = errors.New("rowstore: capacity exceeded")

// Store is an append-only element store with stable element addresses.
// It is not safe for concurrent use.
type Store[E any] struct {
	baseCap int
	maxRows int
	rows    [][]E
	len     int
}

// New creates a Store whose row i holds baseCap<<i elements, up to maxRows
// rows. Non-positive arguments fall back to the defaults.
func New[E any](baseCap, maxRows int) *Store[E] {
	if baseCap <= 0 {
		baseCap = DefaultBaseCap
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Store[E]{
		baseCap: baseCap,
		maxRows: maxRows,
		rows:    make([][]E, 0, maxRows),
	}
}

// Append stores e at the next free index and returns that index.
// Previously returned indexes keep resolving to the same addresses.
func (s *Store[E]) Append(e E) (int, error) {
	row, off := s.locate(s.len)
	if row >= s.maxRows {
		return 0, ErrCapacityExceeded
	}
	if off == 0 && row == len(s.rows) {
		// First write into a fresh row: allocate it at full capacity so
		// the backing array never moves.
		s.rows = append(s.rows, make([]E, 0, s.baseCap<<row))
	}
	s.rows[row] = append(s.rows[row], e)
	s.len++
	return s.len - 1, nil
}

// Get returns a pointer to the element at index i. The pointer stays valid
// across any number of subsequent Append calls.
//
// Get panics if i was never written; that is a programmer error, not a
// recoverable condition.
func (s *Store[E]) Get(i int) *E {
	if i < 0 || i >= s.len {
		panic(fmt.Sprintf("rowstore: index %d out of range [0,%d)", i, s.len))
	}
	row, off := s.locate(i)
	return &s.rows[row][off]
}

// locate decomposes a global index into (row, offset) by walking the
// doubling row capacities.
func (s *Store[E]) locate(i int) (row, off int) {
	capacity := s.baseCap
	for i >= capacity {
		i -= capacity
		capacity <<= 1
		row++
	}
	return row, i
}

// Len returns the number of elements stored.
func (s *Store[E]) Len() int { return s.len }

// Rows returns the number of rows allocated so far.
func (s *Store[E]) Rows() int { return len(s.rows) }

// Cap returns the total element capacity across all configured rows,
// baseCap * (2^maxRows - 1).
func (s *Store[E]) Cap() int { return s.baseCap * ((1 << s.maxRows) - 1) }
