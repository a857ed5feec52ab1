package framesource

import (
	"context"
	"sync/atomic"

	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

// SliceSource replays pre-decoded frames through a single reused buffer,
// mimicking the aliasing behavior of a real decoder. It is mostly useful
// for tests and for still pictures.
type SliceSource struct {
	Frames []*frame.Raw

	consumed atomic.Bool
}

var _ Source = (*SliceSource)(nil)

func NewSliceSource(frames ...*frame.Raw) *SliceSource {
	return &SliceSource{Frames: frames}
}

func (s *SliceSource) ReadFrames(
	ctx context.Context,
	r FrameReader,
) error {
	if s.consumed.Swap(true) {
		return ErrAlreadyConsumed
	}

	var buf frame.Raw
	for _, f := range s.Frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		buf.Width, buf.Height, buf.Stride = f.Width, f.Height, f.Stride
		buf.Pix = append(buf.Pix[:0], f.Pix...)
		if err := r.ReadFrame(ctx, &buf); err != nil {
			return err
		}
	}
	return nil
}

func (s *SliceSource) Close() error {
	return nil
}
