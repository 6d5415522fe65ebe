package heap

import "github.com/joshuapare/heapkit/internal/format"

// The free list is intrusive: each free block's header holds the Refs of its
// list neighbours. Insertion is LIFO at the head and removal is O(1) through
// the block's own links. Order carries no meaning.

// push inserts the free block r at the head of the list.
func (h *Heap) push(r Ref) {
	data := h.data(r)
	off := r.Offset()
	format.SetPrev(data, off, NilRef)
	format.SetNext(data, off, h.head)
	if !h.head.IsNil() {
		format.SetPrev(h.data(h.head), h.head.Offset(), r)
	}
	h.head = r
}

// unlink removes r from the list and clears its links.
func (h *Heap) unlink(r Ref) {
	data := h.data(r)
	off := r.Offset()
	next := format.NextAt(data, off)
	prev := format.PrevAt(data, off)

	if prev.IsNil() {
		h.head = next
	} else {
		format.SetNext(h.data(prev), prev.Offset(), next)
	}
	if !next.IsNil() {
		format.SetPrev(h.data(next), next.Offset(), prev)
	}
	format.SetNext(data, off, NilRef)
	format.SetPrev(data, off, NilRef)
}

// replace puts repl into the list position held by old, which leaves the
// list. repl's header must already be written.
func (h *Heap) replace(old, repl Ref) {
	data := h.data(old)
	off := old.Offset()
	next := format.NextAt(data, off)
	prev := format.PrevAt(data, off)

	rd := h.data(repl)
	format.SetNext(rd, repl.Offset(), next)
	format.SetPrev(rd, repl.Offset(), prev)

	if prev.IsNil() {
		h.head = repl
	} else {
		format.SetNext(h.data(prev), prev.Offset(), repl)
	}
	if !next.IsNil() {
		format.SetPrev(h.data(next), next.Offset(), repl)
	}
}

// search returns the first block on the list whose payload holds need bytes,
// or NilRef.
func (h *Heap) search(need int) Ref {
	for r := h.head; !r.IsNil(); {
		data := h.data(r)
		if format.SizeAt(data, r.Offset()) >= need {
			return r
		}
		r = format.NextAt(data, r.Offset())
	}
	return NilRef
}

// walk calls fn for each list entry in order, with a 1-based index, until fn
// returns false. The walk is bounded by the number of blocks the mapped
// arenas could hold, so a corrupted cycle cannot spin forever.
func (h *Heap) walk(fn func(i int, r Ref, size int) bool) {
	limit := len(h.arenas) * (h.arenaSize/format.MinBlockSize + 1)
	i := 0
	for r := h.head; !r.IsNil() && i < limit; {
		if r.Arena() < 0 || r.Arena() >= len(h.arenas) {
			return
		}
		data := h.data(r)
		i++
		if !fn(i, r, format.SizeAt(data, r.Offset())) {
			return
		}
		r = format.NextAt(data, r.Offset())
	}
}
