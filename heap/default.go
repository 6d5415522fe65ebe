package heap

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/heapkit/internal/logger"
)

// The process-wide heap behind Allocate, Deallocate and DumpFreeList. It is
// created on first use and, like every Heap, is not safe for concurrent use.
var defaultHeap *Heap

// Overridden in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Default returns the process-wide heap, creating it on first use. Running
// out of arenas on this heap terminates the process with status 2.
func Default() *Heap {
	if defaultHeap == nil {
		h, err := New(WithFatal(fatalExhausted))
		if err != nil {
			fatalExhausted(err)
			return nil
		}
		defaultHeap = h
	}
	return defaultHeap
}

func fatalExhausted(err error) {
	logger.Error("out of memory", "err", err)
	fmt.Fprintf(stderr, "heapkit: fatal: %v\n", err)
	exit(2)
}

// Allocate returns size usable bytes from the process-wide heap. A zero size
// returns nil. Requests larger than one arena fail with ErrTooLarge.
func Allocate(size int) ([]byte, error) {
	_, b, err := Default().Alloc(size)
	return b, err
}

// Deallocate returns a slice obtained from Allocate. A nil slice is a no-op.
func Deallocate(b []byte) error {
	return Default().FreeBytes(b)
}

// DumpFreeList writes the process-wide heap's free list to w.
func DumpFreeList(w io.Writer) error {
	return Default().DumpFreeList(w)
}
