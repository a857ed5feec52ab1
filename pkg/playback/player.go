// Package playback renders a sequence of text frames to a terminal at a
// fixed frame rate.
package playback

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asciivideo/pkg/clock"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
	"github.com/xaionaro-go/asciivideo/pkg/observability"
)

var (
	ErrInvalidFPS            = errors.New("the frame rate must be positive")
	ErrFrameGeometryMismatch = errors.New("frames have different dimensions")
	ErrTerminalWrite         = errors.New("unable to write to the terminal")
)

type Stats struct {
	FramesRendered uint64
	Passes         uint64
	LateFrames     uint64
}

type Player struct {
	Config
	out   *bufio.Writer
	state atomic.Int32

	framesRendered atomic.Uint64
	passes         atomic.Uint64
	lateFrames     atomic.Uint64
}

func New(out io.Writer, opts ...Option) *Player {
	return &Player{
		Config: Options(opts).Config(),
		out:    bufio.NewWriter(out),
	}
}

func (p *Player) State() State {
	return State(p.state.Load())
}

func (p *Player) setState(s State) {
	p.state.Store(int32(s))
}

func (p *Player) Stats() Stats {
	return Stats{
		FramesRendered: p.framesRendered.Load(),
		Passes:         p.passes.Load(),
		LateFrames:     p.lateFrames.Load(),
	}
}

// Interval is the time budget of one frame at the given rate.
func Interval(fps uint) time.Duration {
	if fps == 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

func checkGeometry(frames []frame.Text) error {
	w, h := frames[0].Width(), frames[0].Height()
	for idx, f := range frames {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%w: frame #%d: %w", ErrFrameGeometryMismatch, idx, err)
		}
		if f.Width() != w || f.Height() != h {
			return fmt.Errorf("%w: frame #%d is %dx%d, while frame #0 is %dx%d",
				ErrFrameGeometryMismatch, idx, f.Width(), f.Height(), w, h)
		}
	}
	return nil
}

// Play renders the frames in order, pacing them to fps. With loop it starts
// over after the last frame until ctx is cancelled. A frame that takes
// longer than the interval to render is followed by the next one
// immediately; nothing is dropped and the lag is not caught up.
func (p *Player) Play(
	ctx context.Context,
	frames []frame.Text,
	fps uint,
	loop bool,
) (_err error) {
	logger.Debugf(ctx, "Play(ctx, <%d frames>, %d, %t)", len(frames), fps, loop)
	defer func() { logger.Debugf(ctx, "/Play: %v", _err) }()

	if fps == 0 {
		return ErrInvalidFPS
	}
	if len(frames) == 0 {
		return nil
	}
	if err := checkGeometry(frames); err != nil {
		return err
	}

	interval := Interval(fps)
	p.setState(StatePlaying)
	defer p.setState(StateStopped)

	for {
		for idx, f := range frames {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			startTS := p.Clock.Now()
			if err := p.render(f); err != nil {
				return fmt.Errorf("%w: frame #%d: %w", ErrTerminalWrite, idx, err)
			}
			elapsed := p.Clock.Since(startTS)
			p.framesRendered.Add(1)
			observability.FramesRendered.Inc()
			observability.RenderDuration.Observe(elapsed.Seconds())

			if elapsed >= interval {
				p.lateFrames.Add(1)
				observability.FramesLate.Inc()
				logger.Tracef(ctx, "frame #%d took %v (interval %v)", idx, elapsed, interval)
				continue
			}
			if err := clock.Sleep(ctx, p.Clock, interval-elapsed); err != nil {
				return err
			}
		}
		p.passes.Add(1)
		if !loop {
			return nil
		}
	}
}

func (p *Player) render(f frame.Text) error {
	if _, err := p.out.WriteString(p.ClearSequence); err != nil {
		return err
	}
	if _, err := f.WriteTo(p.out); err != nil {
		return err
	}
	return p.out.Flush()
}
