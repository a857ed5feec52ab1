package frame

import (
	"image"
	"image/color"
)

// Raw is a decoded, unscaled RGB24 picture.
//
// Pix usually aliases a buffer owned by the frame source which is
// overwritten on the next decoded frame, so a Raw must be fully consumed
// before control is returned to the source.
type Raw struct {
	Width  uint32
	Height uint32
	Stride uint32
	Pix    []byte
}

var _ image.Image = (*Raw)(nil)

const BytesPerPixel = 3

// NewRaw allocates a tightly packed black frame.
func NewRaw(width, height uint32) *Raw {
	stride := width * BytesPerPixel
	return &Raw{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, int(stride)*int(height)),
	}
}

func (f *Raw) IsEmpty() bool {
	return f == nil || f.Width == 0 || f.Height == 0
}

// Valid reports whether the buffer covers the declared geometry.
func (f *Raw) Valid() bool {
	if f.IsEmpty() {
		return false
	}
	if f.Stride < f.Width*BytesPerPixel {
		return false
	}
	need := int(f.Stride)*(int(f.Height)-1) + int(f.Width)*BytesPerPixel
	return len(f.Pix) >= need
}

func (f *Raw) offset(x, y int) int {
	return y*int(f.Stride) + x*BytesPerPixel
}

func (f *Raw) RGBAt(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= int(f.Width) || y >= int(f.Height) {
		return 0, 0, 0
	}
	i := f.offset(x, y)
	if i+2 >= len(f.Pix) {
		return 0, 0, 0
	}
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

func (f *Raw) SetRGB(x, y int, r, g, b uint8) {
	if x < 0 || y < 0 || x >= int(f.Width) || y >= int(f.Height) {
		return
	}
	i := f.offset(x, y)
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = r, g, b
}

func (f *Raw) ColorModel() color.Model {
	return color.RGBAModel
}

func (f *Raw) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(f.Width), int(f.Height))
}

func (f *Raw) At(x, y int) color.Color {
	r, g, b := f.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
