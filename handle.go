package appendix

// Handle is an opaque reference to one value stored in an arena lineage. It
// records the id of the sub-arena the value currently lives in and the
// value's slot index there.
//
// A Handle is a small value type: copying it (or calling Clone) is cheap and
// never copies the underlying value. A Handle is only valid for arenas
// descended from the lineage that issued it; resolving it elsewhere panics.
//
// GetMut takes *Handle because a mutable access after a Clone relocates the
// value into the active sub-arena and rewrites the handle in place. Copies of
// the handle made before that keep referring to the old, untouched slot.
type Handle[T any] struct {
	subArenaID uint64
	index      int
}

// Clone returns a structural copy of the handle, referring to the same slot.
func (h Handle[T]) Clone() Handle[T] {
	return h
}
