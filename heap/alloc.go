package heap

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Alloc returns a block with at least size usable bytes.
//
// The request is rounded up to a whole word and served first fit from the
// free list. A block with room for the request plus a MinBlockSize remainder
// is split: the low part is returned and the high part takes the original's
// place on the list. A smaller fit is handed out whole. When nothing fits, one
// arena is mapped and the request is served from it.
//
// The returned slice has length size and capacity equal to the block's
// payload. A zero size returns NilRef and a nil slice without error.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if h.closed {
		return NilRef, nil, ErrClosed
	}
	switch {
	case size < 0:
		return NilRef, nil, fmt.Errorf("alloc %d: %w", size, ErrNegativeSize)
	case size == 0:
		return NilRef, nil, nil
	case size > h.capacity:
		return NilRef, nil, fmt.Errorf("alloc %d, arena capacity %d: %w", size, h.capacity, ErrTooLarge)
	}
	need := format.AlignWord(size)
	if need > h.capacity {
		return NilRef, nil, fmt.Errorf("alloc %d (aligned %d), arena capacity %d: %w",
			size, need, h.capacity, ErrTooLarge)
	}

	h.stats.AllocCalls++

	r := h.search(need)
	if r.IsNil() {
		if err := h.grow(); err != nil {
			if errors.Is(err, ErrExhausted) && h.fatal != nil {
				h.log.Error("arena source exhausted", "request", size, "arenas", len(h.arenas), "err", err)
				h.fatal(err)
			}
			return NilRef, nil, err
		}
		h.stats.AllocSlowPath++
		// The fresh arena's block sits at the head and holds any request
		// that passed the capacity check.
		r = h.head
	} else {
		h.stats.AllocFastPath++
	}

	got := h.take(r, need)
	h.stats.BytesAllocated += int64(got)

	p := format.PayloadOffset(r.Offset())
	return r, h.data(r)[p : p+size : p+got], nil
}

// take marks the free block r allocated, splitting off the tail when it is
// large enough to stand alone. Returns the payload size of the allocated block.
func (h *Heap) take(r Ref, need int) int {
	data := h.data(r)
	off := r.Offset()
	have := format.SizeAt(data, off)

	if have >= need+format.MinBlockSize {
		tailOff := format.NextOffset(off, need)
		tailSize := have - need - format.Overhead
		format.WriteBlock(data, tailOff, tailSize, true)
		h.replace(r, format.MakeRef(r.Arena(), tailOff))
		format.WriteBlock(data, off, need, false)
		h.stats.SplitCount++

		if h.logAlloc {
			h.log.Debug("block split",
				"ref", r,
				"size", have,
				"alloc", need,
				"remainder", tailSize)
		}
		return need
	}

	h.unlink(r)
	format.SetFree(data, off, have, false)
	return have
}
