package appendix

import (
	"errors"
	"fmt"

	"github.com/hupe1980/appendix/internal/rowstore"
)

// Arena hands out stable-address storage for appended values and releases
// them only as a group. It is the public façade over one lineage of
// sub-arenas: it holds a shared registry and the id of the sub-arena its
// mutations currently target.
//
// An Arena is designed for thread-local use and is not safe for concurrent
// access. Independent arenas (including the two façades produced by Clone)
// do not observe each other's mutations.
type Arena[T any] struct {
	reg     *registry[T]
	current uint64
	opts    options
}

// New creates an empty arena with a fresh registry and one sub-arena.
func New[T any](optFns ...Option) *Arena[T] {
	a := &Arena[T]{
		reg:  newRegistry[T](),
		opts: applyOptions(optFns),
	}
	a.current = a.register().id
	return a
}

func (a *Arena[T]) register() *subArena[T] {
	sa := a.reg.register(a.opts.baseRowCap, a.opts.maxRows)
	a.opts.logger.LogRegister(sa.id)
	return sa
}

// Append stores v in the arena's current sub-arena and returns a handle to
// it. The value keeps its storage address for the lifetime of the lineage.
//
// Append returns ErrCapacityExceeded once every configured row of the
// current sub-arena is full.
func (a *Arena[T]) Append(v T) (Handle[T], error) {
	sa := a.mustResolve(a.current)
	index, err := sa.append(v)
	if err != nil {
		return Handle[T]{}, translateStoreError(err)
	}
	return Handle[T]{subArenaID: sa.id, index: index}, nil
}

// Get takes a shared borrow of the value h refers to. The handle may name
// any sub-arena of the lineage, not just the current one; Get never
// relocates.
//
// Get fails with a BorrowConflictError while the value is mutably borrowed.
// It panics if h was issued by a different lineage.
func (a *Arena[T]) Get(h Handle[T]) (*Ref[T], error) {
	return a.mustResolve(h.subArenaID).borrow(h.index)
}

// GetMut takes an exclusive borrow of the value h refers to.
//
// If h predates a Clone (its sub-arena is no longer the arena's current
// one), the value is first copied into the current sub-arena and h is
// rewritten to the new location; the old slot stays untouched and remains
// readable through any other handle that still names it. This
// relocate-on-write is what makes Clone O(1).
//
// GetMut fails with a BorrowConflictError while any other borrow on the slot
// is outstanding, and with ErrCapacityExceeded if a relocation cannot
// append. It panics if h was issued by a different lineage.
func (a *Arena[T]) GetMut(h *Handle[T]) (*RefMut[T], error) {
	if h.subArenaID == a.current {
		return a.mustResolve(h.subArenaID).borrowMut(h.index)
	}

	src := a.mustResolve(h.subArenaID)
	v, err := src.read(h.index)
	if err != nil {
		return nil, err
	}

	cur := a.mustResolve(a.current)
	index, err := cur.append(v)
	if err != nil {
		return nil, translateStoreError(err)
	}
	a.opts.logger.LogRelocate(h.subArenaID, h.index, cur.id, index)

	h.subArenaID = cur.id
	h.index = index
	return cur.borrowMut(index)
}

// Clone splits the arena into two independent façades in O(1), without
// copying any stored value. Two fresh sub-arenas are registered in the
// shared registry; the receiver is retargeted to the first and the returned
// arena targets the second.
//
// Handles issued before the Clone stay valid on both sides: they keep
// resolving to the pre-clone sub-arenas, which are never torn down while the
// lineage lives. A value only gets copied when GetMut is first called on a
// pre-clone handle (see GetMut).
//
// Note that Clone retargets the receiver: its future appends land in a fresh
// sub-arena too.
func (a *Arena[T]) Clone() *Arena[T] {
	a.current = a.register().id
	return &Arena[T]{
		reg:     a.reg,
		current: a.register().id,
		opts:    a.opts,
	}
}

// Merge combines two independently created arenas into one façade backed by
// the union of both registries. Every handle previously valid under a or b
// remains valid under the result; ids are process-unique, so nothing is
// renumbered.
//
// The merged arena's mutations target a's current sub-arena. Merge does not
// copy values; sub-arenas are shared with the inputs. It is not meant to be
// followed by mutation through the pre-merge façades.
func Merge[T any](a, b *Arena[T]) *Arena[T] {
	merged := mergeRegistries(a.reg, b.reg)
	a.opts.logger.LogMerge(len(merged.ids))
	return &Arena[T]{
		reg:     merged,
		current: a.current,
		opts:    a.opts,
	}
}

// Release tears down the whole lineage at once: every sub-arena reachable
// through the shared registry drops its storage in a single pass. All
// handles, guards and façades of the lineage are invalid afterwards; using
// them panics.
//
// Release exists for deterministic teardown. An unreferenced lineage is
// reclaimed by the garbage collector the same way, as a unit. Releasing an
// already-released lineage is a no-op.
func (a *Arena[T]) Release() {
	if a.reg.released {
		return
	}
	stats := a.Stats()
	a.reg.release()
	a.opts.logger.LogRelease(stats.SubArenas, stats.Values)
}

// Len returns the number of values stored in the arena's current sub-arena.
func (a *Arena[T]) Len() int {
	return a.mustResolve(a.current).slots.Len()
}

// Stats aggregates storage usage across every sub-arena of the lineage.
func (a *Arena[T]) Stats() Stats {
	a.reg.checkReleased()
	s := Stats{SubArenas: len(a.reg.ids)}
	for _, id := range a.reg.ids {
		sa := a.reg.subs[id]
		s.Values += sa.slots.Len()
		s.Rows += sa.slots.Rows()
		s.Capacity += sa.slots.Cap()
	}
	return s
}

func (a *Arena[T]) String() string {
	return a.Stats().String()
}

// mustResolve looks up a sub-arena by id. An absent id means a handle
// crossed lineages, which is a programmer error, not a recoverable
// condition.
func (a *Arena[T]) mustResolve(id uint64) *subArena[T] {
	sa := a.reg.resolve(id)
	if sa == nil {
		panic(fmt.Sprintf("appendix: handle for sub-arena %d is invalid for this arena", id))
	}
	return sa
}

func translateStoreError(err error) error {
	if errors.Is(err, rowstore.ErrCapacityExceeded) {
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	}
	return err
}
