// Package heap implements a user-space dynamic memory allocator over large
// fixed-size arenas obtained from the operating system.
//
// # Overview
//
// A Heap carves variable-sized blocks out of 16 MiB arenas. Every block is
// framed by boundary tags, a header in front of the payload and a footer
// behind it, both recording the payload size and whether the block is free.
// The tags let Free find and merge both physical neighbours in constant time.
//
// Free blocks are threaded onto one explicit, doubly linked, LIFO free list.
// The links live in the free blocks' own headers, so the list costs no memory
// beyond the tags.
//
// # Block Layout
//
//	+0x00  next   Ref     free-list successor (free blocks only)
//	+0x08  prev   Ref     free-list predecessor (free blocks only)
//	+0x10  size   uint64  payload bytes, a multiple of 8
//	+0x18  tag    uint64  magic | free bit
//	+0x20  payload ...
//	       size   uint64  footer mirror
//	       tag    uint64  footer mirror
//
// Each block therefore costs Overhead (48) bytes on top of its payload, and
// the smallest block that can stand on its own is MinBlockSize (56) bytes.
//
// # Usage Example
//
//	h, err := heap.New()
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	ref, buf, err := h.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, free the block
//	err = h.Free(ref)
//
// The package-level Allocate, Deallocate and DumpFreeList functions operate
// on a process-wide heap that treats arena exhaustion as fatal.
//
// # Allocation
//
// Alloc rounds the request up to a whole word and walks the free list from
// the head, taking the first block large enough (first fit). If the block
// can spare MinBlockSize bytes beyond the request it is split; the remainder
// keeps the original block's position on the list. Otherwise the whole block
// is handed out. When no block fits, a new arena is mapped, formatted as a
// single free block of ArenaSize-Overhead bytes and pushed on the list.
//
// Requests larger than one arena's capacity fail with ErrTooLarge; no arena
// is mapped for them.
//
// # Deallocation
//
// Free validates the reference against the tag words, marks the block free,
// merges it with a free predecessor and then a free successor in the same
// arena, and pushes the result on the list once. Blocks never merge across
// arenas. Freeing a block twice fails with ErrDoubleFree.
//
// # References
//
// A Ref packs the arena index (plus one) into its high 32 bits and the
// header offset into its low 32 bits. The zero Ref is nil. Free-list links
// are stored as Refs, which keeps them valid regardless of where the arenas
// are mapped.
//
// # Thread Safety
//
// A Heap is NOT thread-safe. Callers must serialize access.
//
// # Debugging
//
// Set HEAPKIT_LOG_ALLOC=1 to log arena growth, splits and merges at debug
// level. Check walks every arena and the free list and reports the first
// broken invariant; CheckedAllocator runs it after every call.
package heap
