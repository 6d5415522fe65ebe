package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a tag.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadTag indicates a tag word without TagMagic, i.e. not a block boundary.
	ErrBadTag = errors.New("format: bad tag")
	// ErrBadSize indicates a payload size that is unaligned or below one word.
	ErrBadSize = errors.New("format: bad block size")
	// ErrTagMismatch indicates a header and footer that disagree.
	ErrTagMismatch = errors.New("format: header/footer mismatch")
	// ErrMisaligned indicates a block offset that is not word aligned.
	ErrMisaligned = errors.New("format: misaligned offset")
)
