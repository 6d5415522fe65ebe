package heap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Heap is a boundary-tag allocator over a chain of arenas.
//
// Every arena is tiled by blocks, each framed by a header and a footer that
// record the payload size and the free flag. Free blocks are threaded onto a
// single LIFO doubly linked list whose links live inside the free blocks
// themselves. Allocation is first fit with splitting; Free merges with both
// physical neighbours.
//
// A Heap is not safe for concurrent use.
type Heap struct {
	src       arena.Source
	arenaSize int
	capacity  int // Payload of a fresh arena's single block

	arenas []*arena.Arena
	head   Ref // Free-list head

	log      *slog.Logger
	logAlloc bool
	fatal    func(error)
	closed   bool

	stats allocatorStats

	// onGrow is called after each arena is mapped (test hook).
	onGrow func(*arena.Arena)
}

// Compile-time check.
var _ Allocator = (*Heap)(nil)

// New creates an empty heap. No arena is mapped until the first allocation
// unless WithArenas is given.
func New(opts ...Option) (*Heap, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logAlloc := logger.AllocLoggingRequested()
	log := cfg.logger
	if log == nil {
		if logAlloc {
			log = logger.New(logger.Options{Enabled: true, Level: slog.LevelDebug})
		} else {
			log = logger.L
		}
	}

	h := &Heap{
		src:       cfg.source,
		arenaSize: cfg.arenaSize,
		capacity:  format.CapacityFor(cfg.arenaSize),
		log:       log,
		logAlloc:  logAlloc || cfg.logger != nil,
		fatal:     cfg.fatal,
	}
	for range cfg.preGrow {
		if err := h.grow(); err != nil {
			_ = h.Close()
			return nil, err
		}
	}
	return h, nil
}

// Close unmaps every arena. Refs and slices obtained from the heap must not
// be used afterwards. Close is idempotent.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	var errs []error
	for _, a := range h.arenas {
		if err := h.src.Unmap(a.Data); err != nil {
			errs = append(errs, fmt.Errorf("unmap arena %d: %w", a.Index, err))
		}
	}
	h.arenas = nil
	h.head = NilRef
	return errors.Join(errs...)
}

// Arenas returns the number of arenas mapped.
func (h *Heap) Arenas() int { return len(h.arenas) }

// ArenaSize returns the size of each arena in bytes.
func (h *Heap) ArenaSize() int { return h.arenaSize }

// Capacity returns the largest request Alloc can satisfy.
func (h *Heap) Capacity() int { return h.capacity }

// Check walks every arena and the free list, returning a
// *verify.ValidationError describing the first broken invariant.
func (h *Heap) Check() error {
	if h.closed {
		return ErrClosed
	}
	return verify.AllInvariants(h.regions(), h.head)
}

// Payload returns the payload of the allocated block ref names.
func (h *Heap) Payload(ref Ref) ([]byte, error) {
	if h.closed {
		return nil, ErrClosed
	}
	if ref.IsNil() {
		return nil, nil
	}
	data, size, err := h.resolve(ref)
	if errors.Is(err, ErrDoubleFree) {
		return nil, fmt.Errorf("%v: block is free: %w", ref, ErrBadRef)
	}
	if err != nil {
		return nil, err
	}
	p := format.PayloadOffset(ref.Offset())
	return data[p : p+size : p+size], nil
}

func (h *Heap) data(r Ref) []byte {
	return h.arenas[r.Arena()].Data
}

func (h *Heap) regions() [][]byte {
	out := make([][]byte, len(h.arenas))
	for i, a := range h.arenas {
		out[i] = a.Data
	}
	return out
}
