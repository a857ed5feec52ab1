package libav

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

// rgbConverter converts decoded pictures into tightly packed RGB24 at the
// native resolution. The output buffer is reused between calls.
type rgbConverter struct {
	swsContext *astiav.SoftwareScaleContext
	rgbFrame   *astiav.Frame
	srcWidth   int
	srcHeight  int
	srcFormat  astiav.PixelFormat
	buf        []byte
	raw        frame.Raw
}

const rgbAlign = 1

func (c *rgbConverter) Convert(src *astiav.Frame) (*frame.Raw, error) {
	if c.swsContext == nil ||
		src.Width() != c.srcWidth ||
		src.Height() != c.srcHeight ||
		src.PixelFormat() != c.srcFormat {
		if err := c.reinit(src); err != nil {
			return nil, err
		}
	}

	if err := c.swsContext.ScaleFrame(src, c.rgbFrame); err != nil {
		return nil, fmt.Errorf("unable to convert the picture to RGB24: %w", err)
	}

	size, err := c.rgbFrame.ImageBufferSize(rgbAlign)
	if err != nil {
		return nil, fmt.Errorf("unable to get the RGB24 buffer size: %w", err)
	}
	if cap(c.buf) < size {
		c.buf = make([]byte, size)
	}
	c.buf = c.buf[:size]
	if _, err := c.rgbFrame.ImageCopyToBuffer(c.buf, rgbAlign); err != nil {
		return nil, fmt.Errorf("unable to copy the RGB24 picture: %w", err)
	}

	c.raw = frame.Raw{
		Width:  uint32(c.srcWidth),
		Height: uint32(c.srcHeight),
		Stride: uint32(c.srcWidth * frame.BytesPerPixel),
		Pix:    c.buf,
	}
	return &c.raw, nil
}

func (c *rgbConverter) reinit(src *astiav.Frame) error {
	c.Close()

	w, h := src.Width(), src.Height()
	swsContext, err := astiav.CreateSoftwareScaleContext(
		w, h, src.PixelFormat(),
		w, h, astiav.PixelFormatRgb24,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		return fmt.Errorf("unable to create a scale context for %dx%d %s: %w", w, h, src.PixelFormat(), err)
	}
	c.swsContext = swsContext

	c.rgbFrame = astiav.AllocFrame()
	c.rgbFrame.SetWidth(w)
	c.rgbFrame.SetHeight(h)
	c.rgbFrame.SetPixelFormat(astiav.PixelFormatRgb24)
	if err := c.rgbFrame.AllocBuffer(rgbAlign); err != nil {
		c.Close()
		return fmt.Errorf("unable to allocate an RGB24 frame buffer: %w", err)
	}

	c.srcWidth, c.srcHeight, c.srcFormat = w, h, src.PixelFormat()
	return nil
}

func (c *rgbConverter) Close() {
	if c.swsContext != nil {
		c.swsContext.Free()
		c.swsContext = nil
	}
	if c.rgbFrame != nil {
		c.rgbFrame.Free()
		c.rgbFrame = nil
	}
}
