package heap

import "fmt"

// CheckedAllocator wraps a Heap and runs Check after every mutating call,
// turning the first broken invariant into an error at the call that broke
// it. It is meant for stress runs and tests; every call walks the whole heap.
type CheckedAllocator struct {
	h *Heap
}

// Compile-time check.
var _ Allocator = (*CheckedAllocator)(nil)

// NewChecked wraps h.
func NewChecked(h *Heap) *CheckedAllocator {
	return &CheckedAllocator{h: h}
}

// Heap returns the wrapped heap.
func (c *CheckedAllocator) Heap() *Heap { return c.h }

// Alloc implements Allocator.
func (c *CheckedAllocator) Alloc(size int) (Ref, []byte, error) {
	ref, b, err := c.h.Alloc(size)
	if err != nil {
		return ref, b, err
	}
	if err := c.h.Check(); err != nil {
		return NilRef, nil, fmt.Errorf("after alloc(%d) = %v: %w", size, ref, err)
	}
	return ref, b, nil
}

// Free implements Allocator.
func (c *CheckedAllocator) Free(ref Ref) error {
	if err := c.h.Free(ref); err != nil {
		return err
	}
	if err := c.h.Check(); err != nil {
		return fmt.Errorf("after free(%v): %w", ref, err)
	}
	return nil
}

// Grow implements Allocator.
func (c *CheckedAllocator) Grow() error {
	if err := c.h.Grow(); err != nil {
		return err
	}
	if err := c.h.Check(); err != nil {
		return fmt.Errorf("after grow: %w", err)
	}
	return nil
}
