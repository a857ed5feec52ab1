package libav

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/facebookincubator/go-belt/tool/logger"
)

type decoder struct {
	codec        *astiav.Codec
	codecContext *astiav.CodecContext
	inputStream  *astiav.Stream
}

func (d *decoder) CodecContext() *astiav.CodecContext {
	return d.codecContext
}

func (d *decoder) InputStream() *astiav.Stream {
	return d.inputStream
}

func (d *decoder) Close() {
	if d.codecContext != nil {
		d.codecContext.Free()
		d.codecContext = nil
	}
}

func newDecoder(
	ctx context.Context,
	input *Input,
	stream *astiav.Stream,
) (_ret *decoder, _err error) {
	d := &decoder{
		inputStream: stream,
	}
	defer func() {
		if _err != nil {
			d.Close()
		}
	}()

	d.codec = astiav.FindDecoder(stream.CodecParameters().CodecID())
	if d.codec == nil {
		return nil, fmt.Errorf("unable to find a codec using codec ID %v", stream.CodecParameters().CodecID())
	}

	d.codecContext = astiav.AllocCodecContext(d.codec)
	if d.codecContext == nil {
		return nil, fmt.Errorf("unable to allocate codec context")
	}

	if err := stream.CodecParameters().ToCodecContext(d.codecContext); err != nil {
		return nil, fmt.Errorf("CodecParameters().ToCodecContext(...) returned error: %w", err)
	}
	d.codecContext.SetFramerate(input.FormatContext.GuessFrameRate(stream, nil))

	if err := d.codecContext.Open(d.codec, nil); err != nil {
		return nil, fmt.Errorf("unable to open codec context: %w", err)
	}

	logger.Debugf(ctx, "opened decoder '%s' for stream #%d: %dx%d %s",
		d.codec.Name(), stream.Index(),
		d.codecContext.Width(), d.codecContext.Height(), d.codecContext.PixelFormat(),
	)
	return d, nil
}
