// Package verify provides validation functions for heap arenas and the free
// list threaded through them.
//
// # Overview
//
// The checks walk raw arena memory independently of the allocator's own
// bookkeeping, so they catch corruption the allocator would otherwise
// propagate silently. They are used by the heap's Check method, by tests
// after every operation, and by heapctl's stress command.
//
// Validation categories:
//   - Layout: every arena is tiled exactly by well-formed blocks, header and
//     footer agree, payloads are word aligned and at least one word long
//   - Coalescing: no two physically adjacent blocks are both free
//   - FreeList: every list entry is a free block, prev links mirror next
//     links, no entry repeats, and every free block is on the list
//
// # Quick Start
//
//	if err := verify.AllInvariants(arenas, head); err != nil {
//	    fmt.Printf("heap corrupt: %v\n", err)
//	}
//
// # ValidationError
//
// All validation functions return *ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string         // "Layout", "Coalescing" or "FreeList"
//	    Message string         // Human-readable description
//	    Arena   int            // Arena index (-1 if N/A)
//	    Offset  int            // Block offset within the arena (-1 if N/A)
//	    Details map[string]any // Additional context
//	}
package verify
