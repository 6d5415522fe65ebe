package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// testArenaSize keeps most tests on small Go-heap arenas.
// Capacity of a fresh arena: 4096 - 48 = 4048 bytes.
const testArenaSize = 4096

const testCapacity = testArenaSize - format.Overhead

// newTestHeap creates a heap over Go-heap arenas of testArenaSize bytes.
// Extra options are applied after the defaults.
func newTestHeap(t testing.TB, opts ...Option) *Heap {
	t.Helper()
	all := append([]Option{
		WithSource(arena.GoHeap{}),
		WithArenaSize(testArenaSize),
	}, opts...)
	h, err := New(all...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// mustAlloc allocates size bytes and fails the test on error.
func mustAlloc(t testing.TB, h *Heap, size int) (Ref, []byte) {
	t.Helper()
	ref, b, err := h.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.False(t, ref.IsNil(), "Alloc(%d) returned nil ref", size)
	return ref, b
}

// mustFree frees ref and fails the test on error.
func mustFree(t testing.TB, h *Heap, ref Ref) {
	t.Helper()
	require.NoError(t, h.Free(ref), "Free(%v)", ref)
}

// assertInvariants runs the full heap walk.
func assertInvariants(t testing.TB, h *Heap) {
	t.Helper()
	require.NoError(t, h.Check())
}

// freeSizes returns the payload sizes on the free list in list order.
func freeSizes(h *Heap) []int {
	var out []int
	for _, b := range h.FreeBlocks() {
		out = append(out, b.Size)
	}
	return out
}

// growCounter installs an onGrow hook and returns a pointer to its count.
func growCounter(h *Heap) *int {
	n := new(int)
	h.onGrow = func(*arena.Arena) { *n++ }
	return n
}
