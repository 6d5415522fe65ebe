package verify

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes the first invariant violation found.
type ValidationError struct {
	Type    string
	Message string
	Arena   int
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Arena >= 0 && e.Offset >= 0 {
		return fmt.Sprintf("%s at arena %d offset 0x%X: %s", e.Type, e.Arena, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates all heap invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(arenas [][]byte, head format.Ref) error {
	free, err := Layout(arenas)
	if err != nil {
		return err
	}
	return FreeList(arenas, head, free)
}

// Layout walks every arena block by block. It returns the set of free blocks
// found, keyed by Ref with the payload size as value.
func Layout(arenas [][]byte) (map[format.Ref]int, error) {
	free := make(map[format.Ref]int)
	for ai, data := range arenas {
		if len(data) < format.MinBlockSize {
			return nil, &ValidationError{
				Type:    "Layout",
				Message: fmt.Sprintf("arena too small: %d bytes", len(data)),
				Arena:   ai,
				Offset:  -1,
			}
		}
		pos := 0
		prevFree := false
		for pos < len(data) {
			blk, err := format.ReadHeader(data, pos)
			if err != nil {
				return nil, &ValidationError{
					Type:    "Layout",
					Message: err.Error(),
					Arena:   ai,
					Offset:  pos,
				}
			}
			if blk.End() > len(data) {
				return nil, &ValidationError{
					Type:    "Layout",
					Message: fmt.Sprintf("block extends beyond arena: end=0x%X, size=0x%X", blk.End(), len(data)),
					Arena:   ai,
					Offset:  pos,
				}
			}
			if blk.Free && prevFree {
				return nil, &ValidationError{
					Type:    "Coalescing",
					Message: "adjacent free blocks were not merged",
					Arena:   ai,
					Offset:  pos,
				}
			}
			if blk.Free {
				free[format.MakeRef(ai, pos)] = blk.Size
			}
			prevFree = blk.Free
			pos = blk.End()
		}
	}
	return free, nil
}

// FreeList walks the list from head and cross-checks it against the free
// set produced by Layout.
func FreeList(arenas [][]byte, head format.Ref, free map[format.Ref]int) error {
	seen := make(map[format.Ref]bool, len(free))
	prev := format.NilRef
	for r := head; !r.IsNil(); {
		ai, off := r.Arena(), r.Offset()
		if ai < 0 || ai >= len(arenas) {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("link %v names a missing arena", r),
				Arena:   -1,
				Offset:  -1,
				Details: map[string]any{"arenas": len(arenas)},
			}
		}
		if seen[r] {
			return &ValidationError{
				Type:    "FreeList",
				Message: "block appears twice (cycle)",
				Arena:   ai,
				Offset:  off,
			}
		}
		seen[r] = true
		if _, ok := free[r]; !ok {
			return &ValidationError{
				Type:    "FreeList",
				Message: "list entry is not a free block",
				Arena:   ai,
				Offset:  off,
			}
		}
		data := arenas[ai]
		if got := format.PrevAt(data, off); got != prev {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("prev link %v, expected %v", got, prev),
				Arena:   ai,
				Offset:  off,
			}
		}
		prev = r
		r = format.NextAt(data, off)
	}
	if len(seen) != len(free) {
		for r := range free {
			if !seen[r] {
				return &ValidationError{
					Type:    "FreeList",
					Message: "free block missing from list",
					Arena:   r.Arena(),
					Offset:  r.Offset(),
					Details: map[string]any{"listed": len(seen), "free": len(free)},
				}
			}
		}
	}
	return nil
}
