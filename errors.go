package appendix

import (
	"errors"
	"fmt"
)

var (
	// ErrBorrowConflict is the sentinel every borrow failure unwraps to.
	// Borrow conflicts are recoverable: release the conflicting guard and
	// retry.
	ErrBorrowConflict = errors.New("appendix: borrow conflict")

	// ErrCapacityExceeded is returned by Append (and by GetMut when a
	// relocation needs to append) once every configured row of the target
	// sub-arena is full. The arena stays readable, but this sub-arena
	// cannot grow further.
	ErrCapacityExceeded = errors.New("appendix: arena out of capacity")
)

// BorrowConflictError reports an access that is incompatible with a slot's
// current dynamic borrow state.
//
// It unwraps to ErrBorrowConflict.
type BorrowConflictError struct {
	// Mutable reports whether the failed request was for a mutable borrow.
	Mutable bool
	// Exclusive reports whether the slot is currently mutably borrowed.
	Exclusive bool
	// Readers is the number of shared borrows outstanding on the slot.
	// Zero when Exclusive is set.
	Readers uint32
}

func (e *BorrowConflictError) Error() string {
	if e.Exclusive {
		return "appendix: value already mutably borrowed"
	}
	return fmt.Sprintf("appendix: value already borrowed by %d reader(s)", e.Readers)
}

func (e *BorrowConflictError) Unwrap() error { return ErrBorrowConflict }
