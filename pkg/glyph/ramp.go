// Package glyph maps pixel brightness onto a fixed, ordered ramp of
// printable characters.
package glyph

import (
	"errors"
	"fmt"
)

var ErrInvalidRamp = errors.New("invalid glyph ramp")

// Ramp is an ordered sequence of single-byte glyphs, from the densest
// (darkest) to the sparsest (lightest).
type Ramp string

const DefaultRamp Ramp = "@%#*+=-:. "

func (r Ramp) Len() int {
	return len(r)
}

func (r Ramp) Validate() error {
	if len(r) < 2 {
		return fmt.Errorf("%w: expected at least 2 glyphs, got %d", ErrInvalidRamp, len(r))
	}
	var seen [256]bool
	for idx := 0; idx < len(r); idx++ {
		c := r[idx]
		if c < 0x20 || c > 0x7e {
			return fmt.Errorf("%w: glyph #%d (0x%02x) is not a printable ASCII character", ErrInvalidRamp, idx, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: glyph '%c' is used more than once", ErrInvalidRamp, c)
		}
		seen[c] = true
	}
	return nil
}

// Index returns the ramp position for the brightness:
// floor(brightness*(N-1)/255), clamped to [0, N-1].
func (r Ramp) Index(brightness uint8) int {
	n := len(r)
	if n == 0 {
		return 0
	}
	idx := int(brightness) * (n - 1) / 255
	return min(max(idx, 0), n-1)
}

func (r Ramp) Glyph(brightness uint8) byte {
	return r[r.Index(brightness)]
}

func (r Ramp) String() string {
	return string(r)
}

// Brightness is the integer mean of the three channels.
func Brightness(red, green, blue uint8) uint8 {
	return uint8((uint32(red) + uint32(green) + uint32(blue)) / 3)
}
