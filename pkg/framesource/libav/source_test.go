package libav

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
	"github.com/xaionaro-go/asciivideo/pkg/framesource"
)

type clipStream struct {
	Width  int
	Height int
}

type clipEncoder struct {
	codecContext *astiav.CodecContext
	stream       *astiav.Stream
	frame        *astiav.Frame
}

// writeClip encodes frameCount black MPEG-4 frames per stream into a NUT
// file. B-frames are enabled, so the decoder only releases the last frames
// when it is flushed.
func writeClip(
	t *testing.T,
	path string,
	frameCount int,
	streams ...clipStream,
) {
	codec := astiav.FindEncoder(astiav.CodecIDMpeg4)
	if codec == nil {
		t.Skip("the MPEG-4 encoder is not available in this FFmpeg build")
	}

	formatContext, err := astiav.AllocOutputFormatContext(nil, "nut", path)
	if err != nil || formatContext == nil {
		t.Skipf("the NUT muxer is not available in this FFmpeg build: %v", err)
	}
	defer formatContext.Free()

	var encoders []*clipEncoder
	defer func() {
		for _, enc := range encoders {
			enc.frame.Free()
			enc.codecContext.Free()
		}
	}()
	for _, s := range streams {
		enc := &clipEncoder{
			codecContext: astiav.AllocCodecContext(codec),
			frame:        astiav.AllocFrame(),
		}
		encoders = append(encoders, enc)

		cc := enc.codecContext
		cc.SetWidth(s.Width)
		cc.SetHeight(s.Height)
		cc.SetPixelFormat(astiav.PixelFormatYuv420P)
		cc.SetTimeBase(astiav.NewRational(1, 25))
		cc.SetFramerate(astiav.NewRational(25, 1))

		opts := astiav.NewDictionary()
		require.NoError(t, opts.Set("bf", "2", 0))
		err := cc.Open(codec, opts)
		opts.Free()
		require.NoError(t, err)

		enc.stream = formatContext.NewStream(nil)
		require.NotNil(t, enc.stream)
		require.NoError(t, enc.stream.CodecParameters().FromCodecContext(cc))
		enc.stream.SetTimeBase(cc.TimeBase())

		enc.frame.SetWidth(s.Width)
		enc.frame.SetHeight(s.Height)
		enc.frame.SetPixelFormat(astiav.PixelFormatYuv420P)
		require.NoError(t, enc.frame.AllocBuffer(0))
		require.NoError(t, enc.frame.ImageFillBlack())
	}

	ioContext, err := astiav.OpenIOContext(path, astiav.NewIOContextFlags(astiav.IOContextFlagWrite))
	require.NoError(t, err)
	defer ioContext.Close()
	formatContext.SetPb(ioContext)
	require.NoError(t, formatContext.WriteHeader(nil))

	packet := astiav.AllocPacket()
	defer packet.Free()
	drain := func(enc *clipEncoder) {
		for {
			err := enc.codecContext.ReceivePacket(packet)
			if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
				return
			}
			require.NoError(t, err)
			packet.SetStreamIndex(enc.stream.Index())
			packet.RescaleTs(enc.codecContext.TimeBase(), enc.stream.TimeBase())
			require.NoError(t, formatContext.WriteInterleavedFrame(packet))
		}
	}

	for idx := 0; idx < frameCount; idx++ {
		for _, enc := range encoders {
			enc.frame.SetPts(int64(idx))
			require.NoError(t, enc.codecContext.SendFrame(enc.frame))
			drain(enc)
		}
	}
	for _, enc := range encoders {
		require.NoError(t, enc.codecContext.SendFrame(nil))
		drain(enc)
	}
	require.NoError(t, formatContext.WriteTrailer())
}

func TestSourceReadFrames(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clip.nut")
	const frameCount = 7
	writeClip(t, path, frameCount,
		clipStream{Width: 32, Height: 24},
		clipStream{Width: 64, Height: 48},
	)

	src, err := NewSource(ctx, path, Config{})
	require.NoError(t, err)
	defer src.Close()
	require.Equal(t, 1, src.Stream.Index)
	require.Equal(t, 64, src.Stream.Width)
	require.Equal(t, 48, src.Stream.Height)

	var count int
	err = src.ReadFrames(ctx, framesource.FrameReaderFunc(func(ctx context.Context, f *frame.Raw) error {
		require.Equal(t, uint32(64), f.Width)
		require.Equal(t, uint32(48), f.Height)
		require.True(t, f.Valid())
		r, g, b := f.RGBAt(10, 10)
		require.Less(t, int(r)+int(g)+int(b), 3*32)
		count++
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, frameCount, count)

	stats := src.Stats()
	require.Equal(t, uint64(frameCount), stats.FramesDecoded)
	require.NotZero(t, stats.PacketsSkipped)
	require.Greater(t, stats.PacketsRead, stats.PacketsSkipped)

	err = src.ReadFrames(ctx, framesource.FrameReaderFunc(func(context.Context, *frame.Raw) error {
		return nil
	}))
	require.ErrorIs(t, err, framesource.ErrAlreadyConsumed)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}

func TestSourceReaderErrorIsReturnedAsIs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clip.nut")
	writeClip(t, path, 5, clipStream{Width: 32, Height: 24})

	src, err := NewSource(ctx, path, Config{})
	require.NoError(t, err)
	defer src.Close()

	errStop := errors.New("stop")
	var count int
	err = src.ReadFrames(ctx, framesource.FrameReaderFunc(func(context.Context, *frame.Raw) error {
		count++
		return errStop
	}))
	require.Equal(t, errStop, err)
	require.NotErrorIs(t, err, framesource.ErrDecode)
	require.Equal(t, 1, count)
}

func TestSourceCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.nut")
	writeClip(t, path, 3, clipStream{Width: 32, Height: 24})

	src, err := NewSource(context.Background(), path, Config{})
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = src.ReadFrames(ctx, framesource.FrameReaderFunc(func(context.Context, *frame.Raw) error {
		return nil
	}))
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, framesource.ErrDecode)
}

func TestNewSourceNotFound(t *testing.T) {
	_, err := NewSource(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), Config{})
	require.ErrorIs(t, err, framesource.ErrInputNotFound)

	_, err = NewSource(context.Background(), "", Config{})
	require.ErrorIs(t, err, framesource.ErrInputNotFound)
}

func TestNewSourceNotAVideo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.nut")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewSource(context.Background(), path, Config{})
	require.ErrorIs(t, err, framesource.ErrNoVideoStream)
}
