package libav

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asciivideo/pkg/framesource"
)

type CustomOption struct {
	Key   string
	Value string
}

type InputConfig struct {
	// CustomOptions are passed to the demuxer as is.
	CustomOptions []CustomOption
}

type Input struct {
	Path string
	*astikit.Closer
	*astiav.FormatContext
	*astiav.Dictionary
}

func NewInputFromPath(
	ctx context.Context,
	path string,
	cfg InputConfig,
) (_ret *Input, _err error) {
	if path == "" {
		return nil, fmt.Errorf("%w: the provided path is empty", framesource.ErrInputNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s': %w", framesource.ErrInputNotFound, path, err)
		}
		return nil, fmt.Errorf("unable to access '%s': %w", path, err)
	}

	input := &Input{
		Path:   path,
		Closer: astikit.NewCloser(),
	}
	defer func() {
		if _err != nil {
			_ = input.Closer.Close()
		}
	}()

	input.FormatContext = astiav.AllocFormatContext()
	if input.FormatContext == nil {
		return nil, fmt.Errorf("unable to allocate a format context")
	}
	input.Closer.Add(input.FormatContext.Free)

	if len(cfg.CustomOptions) > 0 {
		input.Dictionary = astiav.NewDictionary()
		input.Closer.Add(input.Dictionary.Free)

		for _, opt := range cfg.CustomOptions {
			if opt.Key == "f" {
				return nil, fmt.Errorf("overriding input format is not supported, yet")
			}
			logger.Debugf(ctx, "input.Dictionary['%s'] = '%s'", opt.Key, opt.Value)
			if err := input.Dictionary.Set(opt.Key, opt.Value, 0); err != nil {
				return nil, fmt.Errorf("unable to set option '%s': %w", opt.Key, err)
			}
		}
	}

	if err := input.FormatContext.OpenInput(path, nil, input.Dictionary); err != nil {
		return nil, fmt.Errorf("%w: unable to open input '%s': %w", framesource.ErrNoVideoStream, path, err)
	}
	input.Closer.Add(input.FormatContext.CloseInput)

	if err := input.FormatContext.FindStreamInfo(nil); err != nil {
		return nil, fmt.Errorf("%w: unable to get stream info: %w", framesource.ErrDecode, err)
	}
	return input, nil
}

func (input *Input) StreamInfos() []framesource.StreamInfo {
	var result []framesource.StreamInfo
	for _, stream := range input.FormatContext.Streams() {
		params := stream.CodecParameters()
		result = append(result, framesource.StreamInfo{
			Index:             stream.Index(),
			IsVideo:           params.MediaType() == astiav.MediaTypeVideo,
			IsAttachedPicture: stream.DispositionFlags().Has(astiav.DispositionFlagAttachedPic),
			Width:             params.Width(),
			Height:            params.Height(),
		})
	}
	return result
}

func (input *Input) Stream(index int) *astiav.Stream {
	for _, stream := range input.FormatContext.Streams() {
		if stream.Index() == index {
			return stream
		}
	}
	return nil
}
