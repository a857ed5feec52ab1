package converter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
	"github.com/xaionaro-go/asciivideo/pkg/framesource"
	"github.com/xaionaro-go/asciivideo/pkg/framestore"
	"github.com/xaionaro-go/asciivideo/pkg/glyph"
	"github.com/xaionaro-go/asciivideo/pkg/playback"
	"github.com/xaionaro-go/asciivideo/pkg/rasterizer"
)

func solid(w, h uint32, v uint8) *frame.Raw {
	f := frame.NewRaw(w, h)
	for idx := range f.Pix {
		f.Pix[idx] = v
	}
	return f
}

func newRasterizer(t *testing.T) *rasterizer.Rasterizer {
	r, err := rasterizer.New(glyph.DefaultRamp)
	require.NoError(t, err)
	return r
}

type failingSink struct {
	failAt int
	count  int
}

func (s *failingSink) Append(frame.Text) error {
	if s.count == s.failAt {
		return errors.New("disk is full")
	}
	s.count++
	return nil
}

func TestConvertToStore(t *testing.T) {
	var buf bytes.Buffer
	w := framestore.NewWriter(&buf)

	src := framesource.NewSliceSource(solid(4, 4, 255), solid(4, 4, 255))
	stats, err := Convert(context.Background(), src, newRasterizer(t), w, 2)
	require.NoError(t, err)
	require.Equal(t, "FRAME_START\n  \n\nFRAME_START\n  \n\n", buf.String())
	require.Equal(t, uint64(2), stats.Frames)
	require.Equal(t, 2, stats.Width)
	require.Equal(t, 1, stats.Height)
	require.Equal(t, uint32(4), stats.SourceWidth)
	require.Equal(t, 2, w.Count())

	frames, err := framestore.Load(&buf)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, []string{"  "}, frames[0].Rows())
}

func TestConvertKeepsFirstFrameGeometry(t *testing.T) {
	var buf bytes.Buffer
	src := framesource.NewSliceSource(solid(40, 40, 0), solid(40, 20, 0), solid(80, 40, 255))
	stats, err := Convert(context.Background(), src, newRasterizer(t), framestore.NewWriter(&buf), 10)
	require.NoError(t, err)
	require.Equal(t, uint64(3), stats.Frames)
	require.Equal(t, 10, stats.Width)
	require.Equal(t, 6, stats.Height)

	frames, err := framestore.Load(&buf)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	for _, f := range frames {
		require.Equal(t, 10, f.Width())
		require.Equal(t, 6, f.Height())
	}

	var out bytes.Buffer
	err = playback.New(&out, playback.OptionClearSequence("")).Play(context.Background(), frames, 1000, false)
	require.NoError(t, err)
	require.Equal(t, 3*6*11, out.Len())
}

func TestConvertEmptySourceThenPlay(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Convert(context.Background(), framesource.NewSliceSource(), newRasterizer(t), framestore.NewWriter(&buf), 80)
	require.NoError(t, err)
	require.Zero(t, stats.Frames)
	require.Zero(t, buf.Len())

	frames, err := framestore.Load(&buf)
	require.NoError(t, err)
	require.Empty(t, frames)

	var out bytes.Buffer
	require.NoError(t, playback.New(&out).Play(context.Background(), frames, 24, true))
	require.Zero(t, out.Len())
}

func TestConvertInvalidWidth(t *testing.T) {
	src := framesource.NewSliceSource(solid(4, 4, 0))
	_, err := Convert(context.Background(), src, newRasterizer(t), &failingSink{failAt: -1}, 0)
	require.ErrorIs(t, err, ErrInvalidWidth)
}

func TestConvertSinkErrorAborts(t *testing.T) {
	src := framesource.NewSliceSource(solid(4, 4, 0), solid(4, 4, 0), solid(4, 4, 0))
	sink := &failingSink{failAt: 1}
	stats, err := Convert(context.Background(), src, newRasterizer(t), sink, 4)
	require.Error(t, err)
	require.Equal(t, uint64(1), stats.Frames)
	require.Equal(t, 1, sink.count)
}

func TestConvertSourceConsumedOnce(t *testing.T) {
	src := framesource.NewSliceSource(solid(4, 4, 0))
	r := newRasterizer(t)
	_, err := Convert(context.Background(), src, r, &failingSink{failAt: -1}, 4)
	require.NoError(t, err)
	_, err = Convert(context.Background(), src, r, &failingSink{failAt: -1}, 4)
	require.ErrorIs(t, err, framesource.ErrAlreadyConsumed)
}
