// Package framesource defines how decoded RGB pictures are pulled out of a
// video and handed over to a consumer.
package framesource

import (
	"context"
	"errors"

	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

var (
	ErrInputNotFound   = errors.New("input not found")
	ErrNoVideoStream   = errors.New("no supported video stream")
	ErrDecode          = errors.New("unable to decode the video")
	ErrAlreadyConsumed = errors.New("the frame source was already consumed")
)

// FrameReader consumes frames one by one. The *frame.Raw is only valid
// until ReadFrame returns.
type FrameReader interface {
	ReadFrame(ctx context.Context, f *frame.Raw) error
}

type FrameReaderFunc func(ctx context.Context, f *frame.Raw) error

func (fn FrameReaderFunc) ReadFrame(ctx context.Context, f *frame.Raw) error {
	return fn(ctx, f)
}

// Source is a finite, non-restartable sequence of decoded frames.
type Source interface {
	// ReadFrames feeds every frame into the reader and returns after the
	// decoder is fully drained. An error returned by the reader aborts
	// reading and is returned as is.
	ReadFrames(ctx context.Context, r FrameReader) error
	Close() error
}
