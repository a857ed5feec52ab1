// Package converter glues a frame source, a rasterizer and a frame store
// together.
package converter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asciivideo/pkg/clock"
	"github.com/xaionaro-go/asciivideo/pkg/frame"
	"github.com/xaionaro-go/asciivideo/pkg/framesource"
	"github.com/xaionaro-go/asciivideo/pkg/observability"
	"github.com/xaionaro-go/asciivideo/pkg/rasterizer"
)

var ErrInvalidWidth = errors.New("the target width must be positive")

// FrameAppender is where the rasterized frames go, usually a
// *framestore.Writer.
type FrameAppender interface {
	Append(frame.Text) error
}

type Stats struct {
	Frames       uint64
	SourceWidth  uint32
	SourceHeight uint32
	Width        int
	Height       int
	Elapsed      time.Duration
}

// Convert rasterizes every frame of src at targetWidth and appends the
// result to sink. All frames share the geometry derived from the first one. The first error aborts the conversion. The frames
// appended before the error stay in the sink.
func Convert(
	ctx context.Context,
	src framesource.Source,
	r *rasterizer.Rasterizer,
	sink FrameAppender,
	targetWidth uint32,
) (_ret Stats, _err error) {
	logger.Debugf(ctx, "Convert(ctx, %T, %d)", src, targetWidth)
	defer func() { logger.Debugf(ctx, "/Convert: %#+v, %v", _ret, _err) }()

	if targetWidth == 0 {
		return Stats{}, ErrInvalidWidth
	}

	var (
		stats         Stats
		width, height uint32
	)
	startTS := clock.Get().Now()
	err := src.ReadFrames(ctx, framesource.FrameReaderFunc(func(
		ctx context.Context,
		raw *frame.Raw,
	) error {
		// The geometry of the first frame is used for the whole store, even if
		// the source changes its resolution mid-stream.
		if stats.Frames == 0 {
			width, height = r.Geometry(raw.Width, raw.Height, targetWidth)
		}
		txt := r.RasterizeTo(raw, width, height)
		if err := sink.Append(txt); err != nil {
			return err
		}

		stats.Frames++
		stats.SourceWidth, stats.SourceHeight = raw.Width, raw.Height
		stats.Width, stats.Height = txt.Width(), txt.Height()
		observability.FramesConverted.Inc()
		logger.Tracef(ctx, "frame #%d: %dx%d -> %dx%d", stats.Frames, raw.Width, raw.Height, stats.Width, stats.Height)
		return nil
	}))
	stats.Elapsed = clock.Get().Since(startTS)
	if err != nil {
		return stats, fmt.Errorf("unable to convert frame #%d: %w", stats.Frames, err)
	}
	return stats, nil
}
