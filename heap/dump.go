package heap

import (
	"fmt"
	"io"
	"iter"

	"github.com/joshuapare/heapkit/internal/format"
)

// DumpFreeList writes one line per free-list entry in list order:
//
//	Free list block (1) has a data size of (16777168) bytes
//
// Indices start at 1. An empty list writes nothing.
func (h *Heap) DumpFreeList(w io.Writer) error {
	if h.closed {
		return ErrClosed
	}
	var err error
	h.walk(func(i int, _ Ref, size int) bool {
		_, err = fmt.Fprintf(w, "Free list block (%d) has a data size of (%d) bytes\n", i, size)
		return err == nil
	})
	return err
}

// FreeBlocks returns the free list in list order.
func (h *Heap) FreeBlocks() []BlockInfo {
	var out []BlockInfo
	h.walk(func(i int, r Ref, size int) bool {
		out = append(out, BlockInfo{Index: i, Ref: r, Size: size})
		return true
	})
	return out
}

// Blocks yields every block of every arena in physical order. Iteration
// stops early at a block that does not decode; Check reports why.
func (h *Heap) Blocks() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, a := range h.arenas {
			for pos := 0; pos < len(a.Data); {
				blk, err := format.ReadHeader(a.Data, pos)
				if err != nil {
					return
				}
				if !yield(Span{Ref: format.MakeRef(a.Index, pos), Size: blk.Size, Free: blk.Free}) {
					return
				}
				pos = blk.End()
			}
		}
	}
}

// Stats returns allocator counters together with free-list totals.
func (h *Heap) Stats() Stats {
	s := Stats{
		Arenas:           len(h.arenas),
		ArenaBytes:       int64(len(h.arenas)) * int64(h.arenaSize),
		AllocCalls:       h.stats.AllocCalls,
		AllocFastPath:    h.stats.AllocFastPath,
		AllocSlowPath:    h.stats.AllocSlowPath,
		FreeCalls:        h.stats.FreeCalls,
		GrowCalls:        h.stats.GrowCalls,
		SplitCount:       h.stats.SplitCount,
		CoalesceBackward: h.stats.CoalesceBackward,
		CoalesceForward:  h.stats.CoalesceForward,
		BytesAllocated:   h.stats.BytesAllocated,
		BytesFreed:       h.stats.BytesFreed,
	}
	h.walk(func(_ int, _ Ref, size int) bool {
		s.FreeBlocks++
		s.FreeBytes += int64(size)
		s.LargestFree = max(s.LargestFree, size)
		return true
	})
	return s
}
