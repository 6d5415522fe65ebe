package format

import "encoding/binary"

// Tag words are little-endian 64-bit integers regardless of host order, so a
// dumped arena decodes the same on every platform.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutRef writes a Ref at off.
func PutRef(b []byte, off int, r Ref) {
	PutU64(b, off, uint64(r))
}

// ReadRef reads a Ref at off.
func ReadRef(b []byte, off int) Ref {
	return Ref(ReadU64(b, off))
}
