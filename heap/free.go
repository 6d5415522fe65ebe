package heap

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Free returns the block ref names to the heap.
//
// The block is merged with its physical predecessor and then its physical
// successor when either is free, and the merged block is inserted at the head
// of the free list exactly once. Freeing NilRef is a no-op.
//
// A ref that does not name a block header fails with ErrBadRef and a block
// that is already free fails with ErrDoubleFree. Neither mutates the heap.
// Validation relies on the tag words, so a ref into payload bytes that happen
// to look like a block header cannot always be told apart.
func (h *Heap) Free(ref Ref) error {
	if h.closed {
		return ErrClosed
	}
	if ref.IsNil() {
		return nil
	}
	data, size, err := h.resolve(ref)
	if err != nil {
		return err
	}

	ai, off := ref.Arena(), ref.Offset()
	h.stats.FreeCalls++
	h.stats.BytesFreed += int64(size)
	format.SetFree(data, off, size, true)

	// Backward: the word pair just below our header is the previous footer.
	if off > 0 {
		foot := format.PrevFooterOffset(off)
		psize, pfree := format.FooterAt(data, foot)
		if pfree {
			prev := format.HeaderFromFooter(foot, psize)
			h.unlink(format.MakeRef(ai, prev))
			size += psize + format.Overhead
			off = prev
			format.WriteBlock(data, off, size, true)
			h.stats.CoalesceBackward++

			if h.logAlloc {
				h.log.Debug("coalesce backward", "ref", format.MakeRef(ai, off), "size", size)
			}
		}
	}

	// Forward
	if next := format.NextOffset(off, size); next < len(data) && format.FreeAt(data, next) {
		nsize := format.SizeAt(data, next)
		h.unlink(format.MakeRef(ai, next))
		size += nsize + format.Overhead
		format.WriteBlock(data, off, size, true)
		h.stats.CoalesceForward++

		if h.logAlloc {
			h.log.Debug("coalesce forward", "ref", format.MakeRef(ai, off), "size", size)
		}
	}

	h.push(format.MakeRef(ai, off))
	return nil
}

// FreeBytes frees the block whose payload b was returned by Alloc. A slice
// with zero capacity is a no-op.
func (h *Heap) FreeBytes(b []byte) error {
	if h.closed {
		return ErrClosed
	}
	if cap(b) == 0 {
		return nil
	}
	ref, err := h.refOf(b)
	if err != nil {
		return err
	}
	return h.Free(ref)
}

// refOf maps a payload slice back to its block by address.
func (h *Heap) refOf(b []byte) (Ref, error) {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	for _, a := range h.arenas {
		off, ok := a.OffsetOf(p)
		if !ok {
			continue
		}
		if off < format.HeaderSize {
			return NilRef, fmt.Errorf("slice at arena %d offset 0x%X: %w", a.Index, off, ErrBadRef)
		}
		return format.MakeRef(a.Index, format.HeaderFromPayload(off)), nil
	}
	return NilRef, fmt.Errorf("slice at %#x outside every arena: %w", p, ErrBadRef)
}

// resolve validates that ref names an allocated block and returns its arena
// and payload size.
func (h *Heap) resolve(ref Ref) ([]byte, int, error) {
	ai, off := ref.Arena(), ref.Offset()
	if ai < 0 || ai >= len(h.arenas) {
		return nil, 0, fmt.Errorf("%v: no arena %d: %w", ref, ai, ErrBadRef)
	}
	data := h.arenas[ai].Data
	if _, err := buf.CheckSpan(len(data), off, format.MinBlockSize); err != nil {
		return nil, 0, fmt.Errorf("%v: %v: %w", ref, err, ErrBadRef)
	}
	if !format.IsWordAligned(off) {
		return nil, 0, fmt.Errorf("%v: %w: %w", ref, ErrBadRef, format.ErrMisaligned)
	}
	if free, ok := format.HeaderTag(data, off); ok && free {
		return nil, 0, fmt.Errorf("%v: %w", ref, ErrDoubleFree)
	}
	blk, err := format.ReadHeader(data, off)
	if err != nil {
		return nil, 0, fmt.Errorf("%v: %w: %w", ref, ErrBadRef, err)
	}
	return data, blk.Size, nil
}
