// Package format defines the on-arena encoding of heap blocks: the header and
// footer boundary tags, the word alignment rules, and the Ref encoding used
// for free-list links. It is the only package that reinterprets raw arena
// bytes; everything above it works in offsets and sizes.
package format

const (
	// WordSize is the alignment boundary for payload sizes and block offsets.
	// Tag fields are 64-bit words on every platform, so the word is fixed at
	// 8 bytes rather than following the pointer width.
	WordSize = 8

	// WordMask is WordSize-1, used for round-up arithmetic.
	WordMask = WordSize - 1

	// HeaderSize is the size of the block header.
	//
	//	Offset  Size  Description
	//	0x00    8     Next free block (Ref), valid only while free
	//	0x08    8     Previous free block (Ref), valid only while free
	//	0x10    8     Payload size in bytes
	//	0x18    8     Tag word: TagMagic in the high 32 bits, free flag in bit 0
	HeaderSize = 0x20

	// FooterSize is the size of the block footer, a mirror of the header's
	// size and tag words at the tail of the block.
	//
	//	Offset  Size  Description
	//	0x00    8     Payload size in bytes
	//	0x08    8     Tag word
	FooterSize = 0x10

	// Overhead is the boundary-tag cost carried by every block.
	Overhead = HeaderSize + FooterSize

	// MinBlockSize is the smallest footprint worth carving off during a
	// split: both tags plus one word of payload.
	MinBlockSize = HeaderSize + FooterSize + WordSize

	// ArenaSize is the default size of a region requested from the OS.
	ArenaSize = 16 << 20

	// ArenaCapacity is the payload size of the single free block a fresh
	// arena of ArenaSize bytes is formatted as.
	ArenaCapacity = ArenaSize - Overhead
)

// Header field offsets relative to the block start.
const (
	HeaderNextOffset = 0x00
	HeaderPrevOffset = 0x08
	HeaderSizeOffset = 0x10
	HeaderTagOffset  = 0x18
)

// Footer field offsets relative to the footer start.
const (
	FooterSizeOffset = 0x00
	FooterTagOffset  = 0x08
)

const (
	// TagMagic occupies the high half of every tag word ("btag").
	TagMagic uint32 = 0x62746167

	// TagFree is the free flag bit of a tag word.
	TagFree uint64 = 1

	tagMagicWord = uint64(TagMagic) << 32
)
