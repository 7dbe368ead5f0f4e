package appendix

// Ref is a scoped shared borrow of one stored value. Any number of shared
// borrows may be live on a slot at once; a live Ref blocks mutable borrows.
//
// Release must be called on every exit path. It is idempotent.
type Ref[T any] struct {
	slot     *slot[T]
	released bool
}

// Value returns the borrowed value.
func (r *Ref[T]) Value() T {
	if r.released {
		panic("appendix: use of released borrow")
	}
	return r.slot.value
}

// Clone takes an additional shared borrow on the same slot. The clone must
// be released independently.
func (r *Ref[T]) Clone() *Ref[T] {
	if r.released {
		panic("appendix: use of released borrow")
	}
	r.slot.borrow++
	return &Ref[T]{slot: r.slot}
}

// Release returns the shared borrow. Releasing twice is a no-op.
func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.slot.borrow--
}

// RefMut is a scoped exclusive borrow of one stored value. While a RefMut is
// live, every other borrow attempt on the slot fails with a
// BorrowConflictError.
//
// Release must be called on every exit path. It is idempotent.
type RefMut[T any] struct {
	slot     *slot[T]
	released bool
}

// Value returns a pointer to the borrowed value for in-place mutation.
// The pointer must not be used after the guard is released.
func (m *RefMut[T]) Value() *T {
	if m.released {
		panic("appendix: use of released borrow")
	}
	return &m.slot.value
}

// Set replaces the borrowed value.
func (m *RefMut[T]) Set(v T) {
	if m.released {
		panic("appendix: use of released borrow")
	}
	m.slot.value = v
}

// Downgrade converts the exclusive borrow into a shared one without a gap
// another borrower could slip into. The RefMut is consumed; only the
// returned Ref needs releasing.
func (m *RefMut[T]) Downgrade() *Ref[T] {
	if m.released {
		panic("appendix: use of released borrow")
	}
	m.released = true
	m.slot.borrow = 1
	return &Ref[T]{slot: m.slot}
}

// Release returns the exclusive borrow. Releasing twice is a no-op.
func (m *RefMut[T]) Release() {
	if m.released {
		return
	}
	m.released = true
	m.slot.borrow = 0
}
