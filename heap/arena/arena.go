// Package arena supplies the large fixed-size regions a heap carves blocks
// out of, and the bookkeeping for a region once it belongs to a heap.
package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/joshuapare/heapkit/internal/mmap"
)

// ErrLimit is returned by Limited once its region budget is spent.
var ErrLimit = errors.New("arena: region limit reached")

// Source supplies regions of memory. Map must return zeroed, word-aligned
// memory of exactly size bytes or an error; there is no partial success.
type Source interface {
	Map(size int) ([]byte, error)
	Unmap(region []byte) error
}

// Mmap maps anonymous private regions straight from the operating system.
type Mmap struct{}

// Map implements Source.
func (Mmap) Map(size int) ([]byte, error) { return mmap.Map(size) }

// Unmap implements Source.
func (Mmap) Unmap(region []byte) error { return mmap.Unmap(region) }

// GoHeap carves regions out of the Go heap. The regions stay reachable
// through the owning heap, so the collector never moves or frees them early.
type GoHeap struct{}

// Map implements Source.
func (GoHeap) Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: invalid size %d", size)
	}
	return make([]byte, size), nil
}

// Unmap implements Source.
func (GoHeap) Unmap([]byte) error { return nil }

// Limited wraps a Source and refuses to map more than Max regions.
type Limited struct {
	Source Source
	Max    int

	mapped int
}

// NewLimited returns a Source that maps at most max regions from src.
func NewLimited(src Source, max int) *Limited {
	return &Limited{Source: src, Max: max}
}

// Map implements Source.
func (l *Limited) Map(size int) ([]byte, error) {
	if l.mapped >= l.Max {
		return nil, fmt.Errorf("%d of %d regions mapped: %w", l.mapped, l.Max, ErrLimit)
	}
	region, err := l.Source.Map(size)
	if err != nil {
		return nil, err
	}
	l.mapped++
	return region, nil
}

// Unmap implements Source.
func (l *Limited) Unmap(region []byte) error {
	if err := l.Source.Unmap(region); err != nil {
		return err
	}
	l.mapped--
	return nil
}

// Arena is one region owned by a heap.
type Arena struct {
	Index int    // Position in the heap's arena chain
	Data  []byte // The mapped region
}

// New wraps a mapped region as arena index.
func New(index int, data []byte) *Arena {
	return &Arena{Index: index, Data: data}
}

// Size returns the region length.
func (a *Arena) Size() int { return len(a.Data) }

// Base returns the address of the first byte of the region.
func (a *Arena) Base() uintptr {
	if len(a.Data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.Data[0]))
}

// OffsetOf returns the offset of address p within the region, or false if
// p lies outside it.
func (a *Arena) OffsetOf(p uintptr) (int, bool) {
	base := a.Base()
	if base == 0 || p < base || p >= base+uintptr(len(a.Data)) {
		return 0, false
	}
	return int(p - base), true
}
