package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawAccessors(t *testing.T) {
	f := NewRaw(2, 2)
	require.True(t, f.Valid())
	require.Equal(t, uint32(6), f.Stride)

	f.SetRGB(1, 1, 10, 20, 30)
	r, g, b := f.RGBAt(1, 1)
	require.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})

	r, g, b = f.RGBAt(5, 5)
	require.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	require.Equal(t, 2, f.Bounds().Dx())
	require.Equal(t, 2, f.Bounds().Dy())
}

func TestRawWithPaddedStride(t *testing.T) {
	f := &Raw{
		Width:  1,
		Height: 2,
		Stride: 8,
		Pix: []byte{
			1, 2, 3, 0, 0, 0, 0, 0,
			4, 5, 6,
		},
	}
	require.True(t, f.Valid())
	r, g, b := f.RGBAt(0, 1)
	require.Equal(t, [3]uint8{4, 5, 6}, [3]uint8{r, g, b})

	f.Pix = f.Pix[:10]
	require.False(t, f.Valid())
}

func TestRawEmpty(t *testing.T) {
	var nilFrame *Raw
	require.True(t, nilFrame.IsEmpty())
	require.True(t, (&Raw{Width: 3}).IsEmpty())
	require.False(t, (&Raw{Width: 3}).Valid())
}

func TestText(t *testing.T) {
	rows := []string{"ab", "cd"}
	txt := NewText(rows)
	rows[0] = "zz"

	require.Equal(t, 2, txt.Width())
	require.Equal(t, 2, txt.Height())
	require.Equal(t, "ab", txt.Row(0))
	require.Equal(t, "ab\ncd\n", txt.String())
	require.Equal(t, len(txt.String()), txt.Len())
	require.NoError(t, txt.Validate())
	require.True(t, txt.Equal(NewText([]string{"ab", "cd"})))
	require.False(t, txt.Equal(NewText([]string{"ab"})))

	var buf bytes.Buffer
	n, err := txt.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "ab\ncd\n", buf.String())

	require.ErrorIs(t, NewText([]string{"abc", "d"}).Validate(), ErrRowLengthMismatch)

	empty := NewText(nil)
	require.True(t, empty.IsEmpty())
	require.Equal(t, 0, empty.Width())
	require.Equal(t, "", empty.String())
}
