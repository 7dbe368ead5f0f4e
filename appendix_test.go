package appendix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AppendGet(t *testing.T) {
	arena := New[int]()
	defer arena.Release()

	h, err := arena.Append(13)
	require.NoError(t, err)

	ref, err := arena.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 13, ref.Value())
	ref.Release()

	mut, err := arena.GetMut(&h)
	require.NoError(t, err)
	*mut.Value()++
	mut.Release()

	ref, err = arena.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 14, ref.Value())
	ref.Release()
}

func TestArena_AddressStability(t *testing.T) {
	// Small rows force several growths; early handles must keep resolving
	// to the same values throughout.
	arena := New[int](WithBaseRowCap(2), WithMaxRows(10))
	defer arena.Release()

	handles := make([]Handle[int], 0, 500)
	for i := 0; i < 500; i++ {
		h, err := arena.Append(i)
		require.NoError(t, err)
		handles = append(handles, h)

		// Every previously issued handle still resolves to its value.
		if i%97 == 0 {
			for j, hj := range handles {
				ref, err := arena.Get(hj)
				require.NoError(t, err)
				assert.Equal(t, j, ref.Value())
				ref.Release()
			}
		}
	}
}

func TestArena_CloneIsolation(t *testing.T) {
	arenaA := New[int]()
	defer arenaA.Release()

	a, err := arenaA.Append(0)
	require.NoError(t, err)
	b, err := arenaA.Append(1)
	require.NoError(t, err)
	c := b.Clone()

	arenaB := arenaA.Clone()

	mut, err := arenaA.GetMut(&b)
	require.NoError(t, err)
	*mut.Value()++
	mut.Release()

	ref, err := arenaA.Get(b)
	require.NoError(t, err)
	assert.Equal(t, 2, ref.Value(), "mutation must be visible through the mutated handle")
	ref.Release()

	ref, err = arenaB.Get(c)
	require.NoError(t, err)
	assert.Equal(t, 1, ref.Value(), "the clone must keep observing the pre-mutation value")
	ref.Release()

	// The untouched value reads the same through both façades.
	for _, arena := range []*Arena[int]{arenaA, arenaB} {
		ref, err := arena.Get(a)
		require.NoError(t, err)
		assert.Equal(t, 0, ref.Value())
		ref.Release()
	}
}

func TestArena_CloneRetargetsBothSides(t *testing.T) {
	arenaA := New[int]()
	defer arenaA.Release()

	_, err := arenaA.Append(1)
	require.NoError(t, err)

	arenaB := arenaA.Clone()

	assert.NotEqual(t, arenaA.current, arenaB.current)
	assert.Equal(t, 0, arenaA.Len(), "receiver must target a fresh sub-arena")
	assert.Equal(t, 0, arenaB.Len(), "clone must target a fresh sub-arena")

	hA, err := arenaA.Append(10)
	require.NoError(t, err)
	hB, err := arenaB.Append(20)
	require.NoError(t, err)

	// Both façades share the registry, so either resolves both handles.
	refA, err := arenaB.Get(hA)
	require.NoError(t, err)
	assert.Equal(t, 10, refA.Value())
	refA.Release()

	refB, err := arenaA.Get(hB)
	require.NoError(t, err)
	assert.Equal(t, 20, refB.Value())
	refB.Release()
}

func TestArena_GetMut_RelocatesOnce(t *testing.T) {
	arena := New[int]()
	defer arena.Release()

	h, err := arena.Append(7)
	require.NoError(t, err)
	oldID := h.subArenaID

	arena.Clone()
	require.Equal(t, 0, arena.Len())

	// First mutable access copies the value into the current sub-arena and
	// rewrites the handle.
	mut, err := arena.GetMut(&h)
	require.NoError(t, err)
	mut.Release()
	assert.Equal(t, arena.current, h.subArenaID)
	assert.NotEqual(t, oldID, h.subArenaID)
	assert.Equal(t, 1, arena.Len())

	// Further mutable accesses borrow in place.
	mut, err = arena.GetMut(&h)
	require.NoError(t, err)
	mut.Release()
	assert.Equal(t, 1, arena.Len())
}

func TestArena_Get_NeverRelocates(t *testing.T) {
	arena := New[int]()
	defer arena.Release()

	h, err := arena.Append(7)
	require.NoError(t, err)
	oldID := h.subArenaID

	arena.Clone()

	ref, err := arena.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 7, ref.Value())
	ref.Release()

	assert.Equal(t, oldID, h.subArenaID, "shared access must not rewrite the handle")
	assert.Equal(t, 0, arena.Len())
}

func TestArena_GetMut_RelocationBlockedByOldBorrow(t *testing.T) {
	arena := New[int]()
	defer arena.Release()

	h, err := arena.Append(7)
	require.NoError(t, err)
	held := h.Clone()

	mut, err := arena.GetMut(&held)
	require.NoError(t, err)

	arena.Clone()

	// The old slot is still mutably borrowed; relocation cannot read it.
	_, err = arena.GetMut(&h)
	var bce *BorrowConflictError
	require.ErrorAs(t, err, &bce)
	assert.True(t, bce.Exclusive)

	mut.Release()

	mut2, err := arena.GetMut(&h)
	require.NoError(t, err)
	mut2.Release()
}

func TestArena_Merge(t *testing.T) {
	arenaA := New[int]()
	arenaB := New[int]()

	a, err := arenaA.Append(0)
	require.NoError(t, err)
	b, err := arenaB.Append(1)
	require.NoError(t, err)

	arenaC := Merge(arenaA, arenaB)

	refA, err := arenaC.Get(a)
	require.NoError(t, err)
	assert.Equal(t, 0, refA.Value())
	refA.Release()

	refB, err := arenaC.Get(b)
	require.NoError(t, err)
	assert.Equal(t, 1, refB.Value())
	refB.Release()

	// The merged façade keeps appending into a's current sub-arena.
	assert.Equal(t, arenaA.current, arenaC.current)
	assert.Equal(t, 2, arenaC.Stats().SubArenas)
}

func TestArena_MergeSameLineage(t *testing.T) {
	arenaA := New[int]()
	defer arenaA.Release()

	h, err := arenaA.Append(42)
	require.NoError(t, err)

	arenaB := arenaA.Clone()
	merged := Merge(arenaA, arenaB)

	assert.Same(t, arenaA.reg, merged.reg, "merging within one lineage reuses the registry")

	ref, err := merged.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 42, ref.Value())
	ref.Release()
}

func TestArena_MergePreservesMutationTargets(t *testing.T) {
	arenaA := New[int]()
	arenaB := New[int]()

	_, err := arenaA.Append(0)
	require.NoError(t, err)
	b, err := arenaB.Append(1)
	require.NoError(t, err)

	arenaC := Merge(arenaA, arenaB)

	// Mutating b through the merged façade relocates into a's current
	// sub-arena; the original stays readable through arenaB.
	held := b.Clone()
	mut, err := arenaC.GetMut(&b)
	require.NoError(t, err)
	*mut.Value() = 99
	mut.Release()

	ref, err := arenaC.Get(b)
	require.NoError(t, err)
	assert.Equal(t, 99, ref.Value())
	ref.Release()

	ref, err = arenaB.Get(held)
	require.NoError(t, err)
	assert.Equal(t, 1, ref.Value())
	ref.Release()
}

func TestArena_CapacityExceeded(t *testing.T) {
	arena := New[int](WithBaseRowCap(1), WithMaxRows(2)) // capacity 3
	defer arena.Release()

	for i := 0; i < 3; i++ {
		_, err := arena.Append(i)
		require.NoError(t, err)
	}

	_, err := arena.Append(3)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// Reads keep working after the failed append.
	assert.Equal(t, 3, arena.Len())
}

func TestArena_ForeignHandlePanics(t *testing.T) {
	arenaA := New[int]()
	defer arenaA.Release()
	arenaB := New[int]()
	defer arenaB.Release()

	_, err := arenaB.Append(84)
	require.NoError(t, err)

	h, err := arenaA.Append(13)
	require.NoError(t, err)

	assert.Panics(t, func() {
		arenaB.Get(h) //nolint:errcheck // panics before returning
	})
	assert.Panics(t, func() {
		arenaB.GetMut(&h) //nolint:errcheck // panics before returning
	})
}

func TestArena_Release(t *testing.T) {
	arena := New[*int]()

	v := new(int)
	*v = 7
	h, err := arena.Append(v)
	require.NoError(t, err)

	clone := arena.Clone()
	arena.Release()
	arena.Release() // idempotent

	// The whole lineage is gone, through every façade and handle.
	assert.Panics(t, func() {
		arena.Append(v) //nolint:errcheck // panics before returning
	})
	assert.Panics(t, func() {
		clone.Get(h) //nolint:errcheck // panics before returning
	})
	assert.Panics(t, func() {
		arena.Stats()
	})
}

func TestArena_Stats(t *testing.T) {
	arena := New[int](WithBaseRowCap(2), WithMaxRows(4))
	defer arena.Release()

	for i := 0; i < 5; i++ {
		_, err := arena.Append(i)
		require.NoError(t, err)
	}

	stats := arena.Stats()
	assert.Equal(t, 1, stats.SubArenas)
	assert.Equal(t, 5, stats.Values)
	assert.Equal(t, 2, stats.Rows) // 2 + 4 covers 5 values
	assert.Equal(t, 30, stats.Capacity)

	arena.Clone()
	stats = arena.Stats()
	assert.Equal(t, 3, stats.SubArenas)
	assert.Equal(t, 5, stats.Values)

	assert.Contains(t, arena.String(), "sub-arenas: 3")
}

func TestHandle_Clone(t *testing.T) {
	arena := New[string]()
	defer arena.Release()

	h, err := arena.Append("x")
	require.NoError(t, err)

	c := h.Clone()
	assert.Equal(t, h, c)

	// Cloning a handle is structural; both resolve to the same slot.
	ref, err := arena.Get(c)
	require.NoError(t, err)
	assert.Equal(t, "x", ref.Value())
	ref.Release()
}
