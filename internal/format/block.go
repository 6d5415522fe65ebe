package format

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Block is a decoded boundary-tagged block.
//
// Block layout within an arena:
//
//	off                        header (HeaderSize bytes)
//	off+HeaderSize             payload (Size bytes)
//	off+HeaderSize+Size        footer (FooterSize bytes)
//	off+Overhead+Size          next physical block
type Block struct {
	Offset int  // Header offset within the arena
	Size   int  // Payload bytes, excluding both tags
	Free   bool // True when the block is on the free list
	Next   Ref  // Free-list successor, only meaningful when Free
	Prev   Ref  // Free-list predecessor, only meaningful when Free
}

// End returns the offset one past the block's footer.
func (b Block) End() int { return NextOffset(b.Offset, b.Size) }

// Payload returns the payload offset.
func (b Block) Payload() int { return PayloadOffset(b.Offset) }

// FooterOffset returns the offset of the footer of the block at off.
func FooterOffset(off, size int) int { return off + HeaderSize + size }

// NextOffset returns the header offset of the physically following block.
func NextOffset(off, size int) int { return off + Overhead + size }

// PayloadOffset returns the payload offset of the block at off.
func PayloadOffset(off int) int { return off + HeaderSize }

// HeaderFromPayload is the inverse of PayloadOffset.
func HeaderFromPayload(p int) int { return p - HeaderSize }

// PrevFooterOffset returns the offset of the footer that physically precedes
// the block at off. Only valid when off > 0.
func PrevFooterOffset(off int) int { return off - FooterSize }

// HeaderFromFooter returns the header offset of the block whose footer is at
// foot and whose payload is size bytes.
func HeaderFromFooter(foot, size int) int { return foot - size - HeaderSize }

func tagWord(free bool) uint64 {
	if free {
		return tagMagicWord | TagFree
	}
	return tagMagicWord
}

func decodeTag(v uint64) (free, ok bool) {
	if uint32(v>>32) != TagMagic {
		return false, false
	}
	return v&TagFree != 0, true
}

// ReadHeader decodes the block at off and cross-checks its footer.
func ReadHeader(b []byte, off int) (Block, error) {
	if off < 0 || !IsWordAligned(off) {
		return Block{}, fmt.Errorf("block 0x%X: %w", off, ErrMisaligned)
	}
	if !buf.Has(b, off, HeaderSize) {
		return Block{}, fmt.Errorf("block 0x%X header: %w", off, ErrTruncated)
	}
	free, ok := decodeTag(ReadU64(b, off+HeaderTagOffset))
	if !ok {
		return Block{}, fmt.Errorf("block 0x%X: %w", off, ErrBadTag)
	}
	raw := ReadU64(b, off+HeaderSizeOffset)
	if raw < WordSize || raw&WordMask != 0 || raw > uint64(len(b)) {
		return Block{}, fmt.Errorf("block 0x%X: size %d: %w", off, raw, ErrBadSize)
	}
	size := int(raw)
	fsize, ffree, err := ReadFooter(b, FooterOffset(off, size))
	if err != nil {
		return Block{}, fmt.Errorf("block 0x%X: %w", off, err)
	}
	if fsize != size || ffree != free {
		return Block{}, fmt.Errorf(
			"block 0x%X: header (%d,%v) footer (%d,%v): %w",
			off, size, free, fsize, ffree, ErrTagMismatch,
		)
	}
	blk := Block{Offset: off, Size: size, Free: free}
	if free {
		blk.Next = ReadRef(b, off+HeaderNextOffset)
		blk.Prev = ReadRef(b, off+HeaderPrevOffset)
	}
	return blk, nil
}

// ReadFooter decodes the footer at foot.
func ReadFooter(b []byte, foot int) (int, bool, error) {
	if !buf.Has(b, foot, FooterSize) {
		return 0, false, fmt.Errorf("footer 0x%X: %w", foot, ErrTruncated)
	}
	free, ok := decodeTag(ReadU64(b, foot+FooterTagOffset))
	if !ok {
		return 0, false, fmt.Errorf("footer 0x%X: %w", foot, ErrBadTag)
	}
	raw := ReadU64(b, foot+FooterSizeOffset)
	if raw < WordSize || raw&WordMask != 0 || raw > uint64(len(b)) {
		return 0, false, fmt.Errorf("footer 0x%X: size %d: %w", foot, raw, ErrBadSize)
	}
	return int(raw), free, nil
}

// HeaderTag reports the state stored in the header tag at off without
// validating size or footer. ok is false when no tag magic is present.
func HeaderTag(b []byte, off int) (free, ok bool) {
	if off < 0 || !buf.Has(b, off, HeaderSize) {
		return false, false
	}
	return decodeTag(ReadU64(b, off+HeaderTagOffset))
}

// WriteBlock writes the size and state of the block at off into both tags.
// Link words are left untouched.
func WriteBlock(b []byte, off, size int, free bool) {
	t := tagWord(free)
	PutU64(b, off+HeaderSizeOffset, uint64(size))
	PutU64(b, off+HeaderTagOffset, t)
	foot := FooterOffset(off, size)
	PutU64(b, foot+FooterSizeOffset, uint64(size))
	PutU64(b, foot+FooterTagOffset, t)
}

// SetFree rewrites the state bit of both tags of the block at off.
func SetFree(b []byte, off, size int, free bool) {
	t := tagWord(free)
	PutU64(b, off+HeaderTagOffset, t)
	PutU64(b, FooterOffset(off, size)+FooterTagOffset, t)
}

// SizeAt returns the header size of a block known to be well formed.
func SizeAt(b []byte, off int) int {
	return int(ReadU64(b, off+HeaderSizeOffset))
}

// FooterAt returns the size and state recorded in a footer known to be well
// formed.
func FooterAt(b []byte, foot int) (int, bool) {
	free, _ := decodeTag(ReadU64(b, foot+FooterTagOffset))
	return int(ReadU64(b, foot+FooterSizeOffset)), free
}

// FreeAt reports the header state of a block known to be well formed.
func FreeAt(b []byte, off int) bool {
	free, ok := decodeTag(ReadU64(b, off+HeaderTagOffset))
	return ok && free
}

// NextAt returns the free-list successor stored in the header at off.
func NextAt(b []byte, off int) Ref { return ReadRef(b, off+HeaderNextOffset) }

// PrevAt returns the free-list predecessor stored in the header at off.
func PrevAt(b []byte, off int) Ref { return ReadRef(b, off+HeaderPrevOffset) }

// SetNext stores the free-list successor in the header at off.
func SetNext(b []byte, off int, r Ref) { PutRef(b, off+HeaderNextOffset, r) }

// SetPrev stores the free-list predecessor in the header at off.
func SetPrev(b []byte, off int, r Ref) { PutRef(b, off+HeaderPrevOffset, r) }
