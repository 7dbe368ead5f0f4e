package appendix

import (
	"math"

	"github.com/hupe1980/appendix/internal/rowstore"
)

// mutably tags a slot whose value is currently exclusively borrowed.
// Any smaller borrow count is the number of live shared borrows.
const mutably = uint32(math.MaxUint32)

// slot pairs a stored value with its dynamic borrow state.
type slot[T any] struct {
	borrow uint32
	value  T
}

// subArena is one independently growable storage unit inside a registry: a
// growth-row store of slots. It is the unit that actually owns values;
// façades and handles only name it by id.
type subArena[T any] struct {
	id    uint64
	slots *rowstore.Store[slot[T]]
}

func newSubArena[T any](id uint64, baseCap, maxRows int) *subArena[T] {
	return &subArena[T]{
		id:    id,
		slots: rowstore.New[slot[T]](baseCap, maxRows),
	}
}

// append stores v in a fresh, unborrowed slot and returns its index.
func (sa *subArena[T]) append(v T) (int, error) {
	return sa.slots.Append(slot[T]{value: v})
}

// borrow takes a shared borrow of the slot at index.
func (sa *subArena[T]) borrow(index int) (*Ref[T], error) {
	s := sa.slots.Get(index)
	if s.borrow == mutably {
		return nil, &BorrowConflictError{Exclusive: true}
	}
	s.borrow++
	return &Ref[T]{slot: s}, nil
}

// borrowMut takes an exclusive borrow of the slot at index.
func (sa *subArena[T]) borrowMut(index int) (*RefMut[T], error) {
	s := sa.slots.Get(index)
	if s.borrow != 0 {
		if s.borrow == mutably {
			return nil, &BorrowConflictError{Mutable: true, Exclusive: true}
		}
		return nil, &BorrowConflictError{Mutable: true, Readers: s.borrow}
	}
	s.borrow = mutably
	return &RefMut[T]{slot: s}, nil
}

// read copies out the value at index without taking a borrow. Used by
// relocate-on-write, which observes the old slot exactly like a momentary
// shared borrower would.
func (sa *subArena[T]) read(index int) (T, error) {
	s := sa.slots.Get(index)
	if s.borrow == mutably {
		var zero T
		return zero, &BorrowConflictError{Exclusive: true}
	}
	return s.value, nil
}
