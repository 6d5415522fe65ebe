package format

import "fmt"

// Ref locates a block header: arena index + 1 in the high 32 bits and the
// byte offset of the header within that arena in the low 32 bits. The zero
// Ref is nil, which lets a zeroed link word mean "end of list".
type Ref uint64

// NilRef is the zero Ref.
const NilRef Ref = 0

// MaxArenas is the number of arenas a Ref can address.
const MaxArenas = 1<<32 - 1

// MakeRef encodes the block at off in arena index arena.
func MakeRef(arena, off int) Ref {
	return Ref(uint64(arena+1)<<32 | uint64(uint32(off)))
}

// IsNil reports whether r is the nil Ref.
func (r Ref) IsNil() bool { return r == NilRef }

// Arena returns the arena index, or -1 for the nil Ref.
func (r Ref) Arena() int { return int(r>>32) - 1 }

// Offset returns the header offset within the arena.
func (r Ref) Offset() int { return int(uint32(r)) }

// String renders r as arena:offset.
func (r Ref) String() string {
	if r.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:0x%X", r.Arena(), r.Offset())
}
