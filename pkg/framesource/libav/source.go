// Package libav implements framesource.Source on top of FFmpeg (via go-astiav).
package libav

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/asticode/go-astiav"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asciivideo/pkg/framesource"
)

type Config struct {
	Input InputConfig
}

type Stats struct {
	PacketsRead    uint64
	PacketsSkipped uint64
	FramesDecoded  uint64
}

type Source struct {
	Locker    sync.Mutex
	Input     *Input
	Stream    framesource.StreamInfo
	decoder   *decoder
	converter rgbConverter
	packet    *astiav.Packet
	frame     *astiav.Frame
	consumed  atomic.Bool
	closed    bool

	PacketsRead    atomic.Uint64
	PacketsSkipped atomic.Uint64
	FramesDecoded  atomic.Uint64
}

var _ framesource.Source = (*Source)(nil)

func NewSource(
	ctx context.Context,
	path string,
	cfg Config,
) (_ret *Source, _err error) {
	logger.Debugf(ctx, "NewSource(ctx, '%s', %#+v)", path, cfg)
	defer func() { logger.Debugf(ctx, "/NewSource(ctx, '%s', %#+v): %v", path, cfg, _err) }()

	input, err := NewInputFromPath(ctx, path, cfg.Input)
	if err != nil {
		return nil, err
	}

	s := &Source{
		Input: input,
	}
	defer func() {
		if _err != nil {
			_ = s.Close()
		}
	}()

	streamInfo, ok := framesource.BestVideoStream(input.StreamInfos())
	if !ok {
		return nil, fmt.Errorf("%w: '%s' has no video streams", framesource.ErrNoVideoStream, path)
	}
	s.Stream = streamInfo
	logger.Debugf(ctx, "selected video stream #%d (%dx%d)", streamInfo.Index, streamInfo.Width, streamInfo.Height)

	s.decoder, err = newDecoder(ctx, input, input.Stream(streamInfo.Index))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to initialize a decoder for stream #%d: %w", framesource.ErrNoVideoStream, streamInfo.Index, err)
	}
	input.Closer.Add(s.decoder.Close)

	s.packet = astiav.AllocPacket()
	input.Closer.Add(s.packet.Free)
	s.frame = astiav.AllocFrame()
	input.Closer.Add(s.frame.Free)
	input.Closer.Add(s.converter.Close)

	return s, nil
}

// FrameRate is the frame rate guessed by the demuxer, zero if unknown.
func (s *Source) FrameRate() float64 {
	return s.decoder.CodecContext().Framerate().Float64()
}

func (s *Source) Stats() Stats {
	return Stats{
		PacketsRead:    s.PacketsRead.Load(),
		PacketsSkipped: s.PacketsSkipped.Load(),
		FramesDecoded:  s.FramesDecoded.Load(),
	}
}

type readerError struct {
	err error
}

func (e readerError) Error() string { return e.err.Error() }
func (e readerError) Unwrap() error { return e.err }

func (s *Source) ReadFrames(
	ctx context.Context,
	r framesource.FrameReader,
) (_err error) {
	logger.Debugf(ctx, "ReadFrames")
	defer func() { logger.Debugf(ctx, "/ReadFrames: %v", _err) }()

	if s.consumed.Swap(true) {
		return framesource.ErrAlreadyConsumed
	}

	s.Locker.Lock()
	defer s.Locker.Unlock()
	if s.closed {
		return fmt.Errorf("the source is closed")
	}

	err := s.readFrames(ctx, r)
	var rErr readerError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &rErr):
		return rErr.err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", framesource.ErrDecode, err)
	}
}

func (s *Source) readFrames(
	ctx context.Context,
	r framesource.FrameReader,
) error {
	codecCtx := s.decoder.CodecContext()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := s.Input.FormatContext.ReadFrame(s.packet)
		if err != nil {
			if errors.Is(err, astiav.ErrEof) {
				break
			}
			return fmt.Errorf("unable to read a packet: %w", err)
		}
		s.PacketsRead.Add(1)

		if s.packet.StreamIndex() != s.Stream.Index {
			s.PacketsSkipped.Add(1)
			s.packet.Unref()
			continue
		}

		err = codecCtx.SendPacket(s.packet)
		s.packet.Unref()
		if err != nil {
			return fmt.Errorf("unable to send a packet to the decoder: %w", err)
		}

		if err := s.receiveFrames(ctx, r); err != nil {
			return err
		}
	}

	logger.Tracef(ctx, "end of input, flushing the decoder")
	if err := codecCtx.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return fmt.Errorf("unable to flush the decoder: %w", err)
	}
	return s.receiveFrames(ctx, r)
}

// receiveFrames drains the decoder until it asks for more input or is
// fully flushed.
func (s *Source) receiveFrames(
	ctx context.Context,
	r framesource.FrameReader,
) error {
	codecCtx := s.decoder.CodecContext()
	for {
		err := codecCtx.ReceiveFrame(s.frame)
		switch {
		case err == nil:
		case errors.Is(err, astiav.ErrEof), errors.Is(err, astiav.ErrEagain):
			return nil
		default:
			return fmt.Errorf("unable to receive a frame: %w", err)
		}
		s.FramesDecoded.Add(1)

		raw, err := s.converter.Convert(s.frame)
		s.frame.Unref()
		if err != nil {
			return err
		}

		if err := r.ReadFrame(ctx, raw); err != nil {
			return readerError{err: err}
		}
	}
}

func (s *Source) Close() error {
	s.Locker.Lock()
	defer s.Locker.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.Input.Closer.Close()
}
