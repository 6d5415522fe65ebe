package format

// AlignWord returns n aligned up to the next WordSize boundary.
//
// Example:
//
//	AlignWord(1)  = 8
//	AlignWord(8)  = 8
//	AlignWord(9)  = 16
func AlignWord(n int) int {
	return (n + WordMask) &^ WordMask
}

// AlignWordDown returns n aligned down to a WordSize boundary.
func AlignWordDown(n int) int {
	return n &^ WordMask
}

// IsWordAligned reports whether n is a multiple of WordSize.
func IsWordAligned(n int) bool {
	return n&WordMask == 0
}

// Footprint is the number of arena bytes occupied by a block whose payload
// is size bytes.
func Footprint(size int) int {
	return size + Overhead
}

// CapacityFor returns the payload size of a single block spanning an arena
// of arenaSize bytes.
func CapacityFor(arenaSize int) int {
	return arenaSize - Overhead
}
