// Package appendix provides a runtime-borrowchecked arena for storing and
// referencing values.
//
// When a value is appended to an arena it stays at a fixed storage address
// for the whole lifetime of the arena lineage and never moves, so handles to
// it remain valid across any number of further appends. Values are released
// only en masse, when the lineage is torn down.
//
// # Quick Start
//
//	arena := appendix.New[int]()
//	defer arena.Release()
//
//	h, _ := arena.Append(13)
//
//	ref, _ := arena.Get(h)
//	fmt.Println(ref.Value()) // 13
//	ref.Release()
//
//	mut, _ := arena.GetMut(&h)
//	*mut.Value()++
//	mut.Release()
//
// # Borrow Checking
//
// Access to stored values goes through scoped guards that enforce a
// single-writer/multi-reader discipline at runtime: any number of shared
// borrows (Get) may be live at once, but a mutable borrow (GetMut) is
// exclusive. Conflicting requests fail with a BorrowConflictError instead of
// handing out aliased mutable access. Guards must be released; releasing is
// idempotent.
//
// # Clone and Merge
//
// Clone is O(1): it registers two fresh sub-arenas in the shared registry and
// retargets the receiver and the returned arena to one each. No value is
// copied until the first GetMut through a pre-clone handle, which relocates
// that one value into the mutating arena's active sub-arena
// (relocate-on-write). Handles held before the clone keep reading the
// original, unmodified value through the other arena.
//
// Merge combines two independently created arenas into one through which
// every previously issued handle of either lineage remains valid. Sub-arena
// ids are process-unique and monotonic, so merging never renumbers anything.
//
// # Concurrency
//
// An Arena and its guards are designed for thread-local use. Nothing in the
// package synchronizes access; the dynamic borrow checks catch aliasing
// violations within a single goroutine's call sequence, they are not locks.
// Arenas created independently (one per goroutine) are fully isolated.
//
// # Capacity
//
// Storage grows in rows of doubling capacity (32, 64, 128, ... by default,
// for up to 32 rows). Rows never reallocate, which is what keeps addresses
// stable. Exhausting the last row makes Append return ErrCapacityExceeded;
// the arena stays readable. Row geometry is configurable via options.
package appendix
