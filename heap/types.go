package heap

import "github.com/joshuapare/heapkit/internal/format"

// Ref names an allocated block: the arena it lives in and the offset of its
// header. The zero Ref is nil.
type Ref = format.Ref

// NilRef is the zero Ref returned for zero-size requests.
const NilRef = format.NilRef

// Layout constants re-exported for callers sizing their requests.
const (
	WordSize     = format.WordSize
	HeaderSize   = format.HeaderSize
	FooterSize   = format.FooterSize
	Overhead     = format.Overhead
	MinBlockSize = format.MinBlockSize
	ArenaSize    = format.ArenaSize
)

// Allocator defines the allocate/deallocate contract.
//
// Implementations:
//   - Heap: boundary-tag first-fit allocator
//   - CheckedAllocator: wrapper that verifies every invariant after each call
type Allocator interface {
	// Alloc returns a block with at least size usable bytes. The slice has
	// length size and capacity equal to the block's payload. A zero size
	// yields NilRef and a nil slice.
	Alloc(size int) (Ref, []byte, error)

	// Free returns a block to the allocator. Freeing NilRef is a no-op.
	Free(ref Ref) error

	// Grow adds one arena to the allocator.
	Grow() error
}

// BlockInfo describes one free-list entry.
type BlockInfo struct {
	Index int // 1-based position on the free list
	Ref   Ref
	Size  int // Payload bytes
}

// Span describes one block in physical order.
type Span struct {
	Ref  Ref
	Size int // Payload bytes
	Free bool
}

// Stats is a snapshot of allocator counters and free-list totals.
type Stats struct {
	Arenas      int   // Arenas mapped
	ArenaBytes  int64 // Total bytes mapped
	FreeBlocks  int   // Entries on the free list
	FreeBytes   int64 // Payload bytes on the free list
	LargestFree int   // Largest free payload

	AllocCalls       int   // Alloc() calls with size > 0
	AllocFastPath    int   // Allocations served without growing
	AllocSlowPath    int   // Allocations that required a new arena
	FreeCalls        int   // Successful Free() calls on non-nil refs
	GrowCalls        int   // Arenas mapped
	SplitCount       int   // Blocks split on allocation
	CoalesceBackward int   // Merges with the physical predecessor
	CoalesceForward  int   // Merges with the physical successor
	BytesAllocated   int64 // Payload bytes handed out, including absorbed remainders
	BytesFreed       int64 // Payload bytes returned
}

// InUse returns payload bytes currently allocated.
func (s Stats) InUse() int64 { return s.BytesAllocated - s.BytesFreed }

// allocatorStats holds internal allocator counters.
type allocatorStats struct {
	AllocCalls       int
	AllocFastPath    int
	AllocSlowPath    int
	FreeCalls        int
	GrowCalls        int
	SplitCount       int
	CoalesceBackward int
	CoalesceForward  int
	BytesAllocated   int64
	BytesFreed       int64
}
