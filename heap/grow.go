package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// Grow maps one more arena and puts its single free block at the head of
// the free list. Existing blocks are not touched.
func (h *Heap) Grow() error {
	if h.closed {
		return ErrClosed
	}
	return h.grow()
}

func (h *Heap) grow() error {
	if uint64(len(h.arenas)) >= format.MaxArenas {
		return fmt.Errorf("%d arenas mapped: %w", len(h.arenas), ErrExhausted)
	}
	data, err := h.src.Map(h.arenaSize)
	if err != nil {
		return fmt.Errorf("map %d bytes: %w: %w", h.arenaSize, ErrExhausted, err)
	}
	if len(data) != h.arenaSize {
		_ = h.src.Unmap(data)
		return fmt.Errorf("map %d bytes: got %d: %w", h.arenaSize, len(data), ErrExhausted)
	}

	a := arena.New(len(h.arenas), data)
	h.arenas = append(h.arenas, a)
	format.WriteBlock(data, 0, h.capacity, true)
	h.push(format.MakeRef(a.Index, 0))
	h.stats.GrowCalls++

	if h.logAlloc {
		h.log.Debug("arena mapped",
			"arena", a.Index,
			"bytes", h.arenaSize,
			"capacity", h.capacity,
			"arenas", len(h.arenas))
	}
	if h.onGrow != nil {
		h.onGrow(a)
	}
	return nil
}
