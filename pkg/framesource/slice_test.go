package framesource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

func TestSliceSource(t *testing.T) {
	ctx := context.Background()
	a, b := frame.NewRaw(1, 1), frame.NewRaw(2, 1)
	a.SetRGB(0, 0, 1, 2, 3)
	b.SetRGB(1, 0, 4, 5, 6)

	src := NewSliceSource(a, b)
	var seen []*frame.Raw
	var widths []uint32
	err := src.ReadFrames(ctx, FrameReaderFunc(func(ctx context.Context, f *frame.Raw) error {
		seen = append(seen, f)
		widths = append(widths, f.Width)
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2}, widths)
	require.Same(t, seen[0], seen[1], "the buffer is expected to be reused")

	r, g, bl := seen[1].RGBAt(1, 0)
	require.Equal(t, [3]uint8{4, 5, 6}, [3]uint8{r, g, bl})

	err = src.ReadFrames(ctx, FrameReaderFunc(func(context.Context, *frame.Raw) error { return nil }))
	require.ErrorIs(t, err, ErrAlreadyConsumed)
	require.NoError(t, src.Close())
}

func TestSliceSourceReaderError(t *testing.T) {
	errStop := errors.New("stop")
	calls := 0
	src := NewSliceSource(frame.NewRaw(1, 1), frame.NewRaw(1, 1))
	err := src.ReadFrames(context.Background(), FrameReaderFunc(func(context.Context, *frame.Raw) error {
		calls++
		return errStop
	}))
	require.ErrorIs(t, err, errStop)
	require.Equal(t, 1, calls)
}

func TestSliceSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSliceSource(frame.NewRaw(1, 1)).ReadFrames(ctx, FrameReaderFunc(func(context.Context, *frame.Raw) error {
		return nil
	}))
	require.ErrorIs(t, err, context.Canceled)
}
