package heap

import "errors"

var (
	// ErrExhausted indicates the arena source refused to supply another arena.
	// The process-wide heap treats it as fatal.
	ErrExhausted = errors.New("heap: arena source exhausted")

	// ErrTooLarge indicates a request whose aligned size exceeds the payload
	// capacity of a single arena. No arena is grown for such a request.
	ErrTooLarge = errors.New("heap: request larger than one arena")

	// ErrBadRef indicates a reference that does not name a live block header.
	ErrBadRef = errors.New("heap: bad block reference")

	// ErrDoubleFree indicates an attempt to free a block that is already free.
	ErrDoubleFree = errors.New("heap: block already free")

	// ErrNegativeSize indicates a negative allocation request.
	ErrNegativeSize = errors.New("heap: negative size")

	// ErrClosed indicates use of a heap after Close.
	ErrClosed = errors.New("heap: closed")

	// ErrBadConfig indicates an Option combination New cannot honor.
	ErrBadConfig = errors.New("heap: invalid configuration")
)
