// Package rasterizer turns decoded RGB pictures into fixed-geometry
// glyph grids.
package rasterizer

import (
	"fmt"
	"image"

	"github.com/xaionaro-go/asciivideo/pkg/frame"
	"github.com/xaionaro-go/asciivideo/pkg/glyph"
	"golang.org/x/image/draw"
)

// Rasterizer keeps a reusable resampling canvas, so it must not be used
// from multiple goroutines at once.
type Rasterizer struct {
	Ramp   glyph.Ramp
	Config Config

	canvas *image.RGBA
	row    []byte
}

func New(
	ramp glyph.Ramp,
	opts ...Option,
) (*Rasterizer, error) {
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	cfg := Options(opts).Config()
	if !(cfg.CellAspect > 0) {
		return nil, fmt.Errorf("the cell aspect must be positive, got %v", cfg.CellAspect)
	}
	return &Rasterizer{
		Ramp:   ramp,
		Config: cfg,
	}, nil
}

// Geometry returns the glyph grid size for a source picture.
//
// The height is truncated twice: once after applying the picture aspect
// ratio and once after applying the cell aspect correction.
func Geometry(
	srcWidth, srcHeight uint32,
	targetWidth uint32,
	cellAspect float64,
) (uint32, uint32) {
	if srcWidth == 0 || srcHeight == 0 || targetWidth == 0 {
		return 0, 0
	}
	aspectRatio := float64(srcHeight) / float64(srcWidth)
	targetHeight := uint32(float64(targetWidth) * aspectRatio)
	adjustedHeight := uint32(float64(targetHeight) * cellAspect)
	return targetWidth, adjustedHeight
}

func (r *Rasterizer) Geometry(srcWidth, srcHeight, targetWidth uint32) (uint32, uint32) {
	return Geometry(srcWidth, srcHeight, targetWidth, r.Config.CellAspect)
}

func (r *Rasterizer) Rasterize(
	raw *frame.Raw,
	targetWidth uint32,
) frame.Text {
	if raw.IsEmpty() {
		return frame.Text{}
	}
	w, h := r.Geometry(raw.Width, raw.Height, targetWidth)
	return r.RasterizeTo(raw, w, h)
}

// RasterizeTo resamples raw into exactly width x height glyphs, regardless
// of the picture aspect ratio. A raw frame whose buffer does not cover its
// declared geometry yields an empty Text.
func (r *Rasterizer) RasterizeTo(
	raw *frame.Raw,
	width, height uint32,
) frame.Text {
	if !raw.Valid() || width == 0 || height == 0 {
		return frame.Text{}
	}

	canvas := r.getCanvas(int(width), int(height))
	draw.NearestNeighbor.Scale(canvas, canvas.Bounds(), raw, raw.Bounds(), draw.Src, nil)

	row := r.getRow(int(width))
	rows := make([]string, height)
	for y := range rows {
		pix := canvas.Pix[y*canvas.Stride:]
		for x := range row {
			p := pix[x*4 : x*4+3]
			row[x] = r.Ramp.Glyph(glyph.Brightness(p[0], p[1], p[2]))
		}
		rows[y] = string(row)
	}
	return frame.NewText(rows)
}

func (r *Rasterizer) getCanvas(w, h int) *image.RGBA {
	if r.canvas != nil && r.canvas.Rect.Dx() == w && r.canvas.Rect.Dy() == h {
		return r.canvas
	}
	r.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	return r.canvas
}

func (r *Rasterizer) getRow(w int) []byte {
	if cap(r.row) < w {
		r.row = make([]byte, w)
	}
	r.row = r.row[:w]
	return r.row
}
