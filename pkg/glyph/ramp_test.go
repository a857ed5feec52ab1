package glyph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRampIsValid(t *testing.T) {
	require.NoError(t, DefaultRamp.Validate())
	require.Equal(t, 10, DefaultRamp.Len())
}

func TestRampValidate(t *testing.T) {
	for _, tc := range []struct {
		name  string
		ramp  Ramp
		isErr bool
	}{
		{name: "empty", ramp: "", isErr: true},
		{name: "single", ramp: "@", isErr: true},
		{name: "two", ramp: "@ ", isErr: false},
		{name: "duplicate", ramp: "@#@", isErr: true},
		{name: "control_char", ramp: "@\t ", isErr: true},
		{name: "non_ascii", ramp: "@\xc3 ", isErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ramp.Validate()
			if tc.isErr {
				require.ErrorIs(t, err, ErrInvalidRamp)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGlyphExtremes(t *testing.T) {
	require.Equal(t, byte('@'), DefaultRamp.Glyph(0))
	require.Equal(t, byte(' '), DefaultRamp.Glyph(255))

	twoGlyphs := Ramp("#.")
	require.Equal(t, byte('#'), twoGlyphs.Glyph(0))
	require.Equal(t, byte('#'), twoGlyphs.Glyph(254))
	require.Equal(t, byte('.'), twoGlyphs.Glyph(255))
}

func TestGlyphIsMonotonicAndInRamp(t *testing.T) {
	for _, ramp := range []Ramp{DefaultRamp, "#.", " .:-=+*#%@", "ab"} {
		prevIdx := -1
		for b := 0; b <= 255; b++ {
			idx := ramp.Index(uint8(b))
			assert.GreaterOrEqual(t, idx, prevIdx, "ramp %q, brightness %d", ramp, b)
			prevIdx = idx

			g := ramp.Glyph(uint8(b))
			assert.True(t, strings.IndexByte(string(ramp), g) >= 0)
		}
		require.Equal(t, ramp.Len()-1, prevIdx)
	}
}

func TestGlyphIndexFormula(t *testing.T) {
	// 10 glyphs: index = b*9/255
	require.Equal(t, 0, DefaultRamp.Index(28))
	require.Equal(t, 1, DefaultRamp.Index(29))
	require.Equal(t, 4, DefaultRamp.Index(127))
	require.Equal(t, 8, DefaultRamp.Index(254))
	require.Equal(t, 9, DefaultRamp.Index(255))
}

func TestBrightness(t *testing.T) {
	require.Equal(t, uint8(0), Brightness(0, 0, 0))
	require.Equal(t, uint8(255), Brightness(255, 255, 255))
	require.Equal(t, uint8(85), Brightness(255, 0, 0))
	require.Equal(t, uint8(2), Brightness(1, 2, 4))
}
