// Package framestore persists glyph frames in a line-oriented text file:
//
//	FRAME_START
//	<row 1>
//	...
//	<row H>
//	<empty line>
//
// The order of frames in the file is the playback order. There are no
// timestamps, checksums or version fields.
package framestore

import (
	"errors"
)

const (
	FrameMarker = "FRAME_START"

	// MaxLineLength bounds a single row while loading.
	MaxLineLength = 16 << 20
)

var (
	ErrStoreWrite = errors.New("unable to write the frame store")
	ErrStoreRead  = errors.New("unable to read the frame store")
)

var gzipMagic = []byte{0x1f, 0x8b}
