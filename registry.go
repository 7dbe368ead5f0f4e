package appendix

import "sync/atomic"

// subArenaIDs issues process-unique sub-arena ids. Ids are strictly
// increasing across all lineages, so merging two registries can never
// collide or require renumbering.
var subArenaIDs atomic.Uint64

// registry is the shared, append-only table mapping sub-arena ids to
// sub-arenas. Every façade and handle descended from a common lineage
// resolves through the same registry instance.
//
// Ids are inserted in increasing order and never removed individually;
// release drops every sub-arena at once.
type registry[T any] struct {
	subs     map[uint64]*subArena[T]
	ids      []uint64 // insertion order
	released bool
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{
		subs: make(map[uint64]*subArena[T]),
	}
}

// register creates a fresh empty sub-arena under the next id.
func (r *registry[T]) register(baseCap, maxRows int) *subArena[T] {
	r.checkReleased()
	sa := newSubArena[T](subArenaIDs.Add(1), baseCap, maxRows)
	r.subs[sa.id] = sa
	r.ids = append(r.ids, sa.id)
	return sa
}

// resolve returns the sub-arena registered under id, or nil if the id
// belongs to a different lineage.
func (r *registry[T]) resolve(id uint64) *subArena[T] {
	r.checkReleased()
	return r.subs[id]
}

// release drops every sub-arena in one pass. The registry is unusable
// afterwards; values become unreachable as a unit.
func (r *registry[T]) release() {
	r.subs = nil
	r.ids = nil
	r.released = true
}

func (r *registry[T]) checkReleased() {
	if r.released {
		panic("appendix: use after Release")
	}
}

// mergeRegistries returns a registry holding the union of a's and b's
// entries. Sub-arenas are shared with the inputs, not copied, so every
// handle valid under either input resolves under the result.
func mergeRegistries[T any](a, b *registry[T]) *registry[T] {
	a.checkReleased()
	b.checkReleased()

	if a == b {
		return a
	}

	merged := &registry[T]{
		subs: make(map[uint64]*subArena[T], len(a.subs)+len(b.subs)),
		ids:  make([]uint64, 0, len(a.ids)+len(b.ids)),
	}
	for _, src := range []*registry[T]{a, b} {
		for _, id := range src.ids {
			if _, ok := merged.subs[id]; ok {
				// Overlapping lineages (an input was itself a merge
				// product); keep the shared entry once.
				continue
			}
			merged.subs[id] = src.subs[id]
			merged.ids = append(merged.ids, id)
		}
	}
	return merged
}
