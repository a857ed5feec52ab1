package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/xaionaro-go/asciivideo/pkg/config"
	"github.com/xaionaro-go/asciivideo/pkg/converter"
	"github.com/xaionaro-go/asciivideo/pkg/framesource/libav"
	"github.com/xaionaro-go/asciivideo/pkg/framestore"
	"github.com/xaionaro-go/asciivideo/pkg/glyph"
	"github.com/xaionaro-go/asciivideo/pkg/rasterizer"
)

func convertCmd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg, err := getConfig(cmd)
	assertNoError(ctx, err)

	storePath := cfg.Output
	if len(args) > 1 {
		storePath = mustExpand(ctx, args[1])
	}
	assertNoError(ctx, convertFile(ctx, cmd, mustExpand(ctx, args[0]), storePath, cfg))
}

func convertFile(
	ctx context.Context,
	cmd *cobra.Command,
	videoPath string,
	storePath string,
	cfg config.Config,
) (_err error) {
	logger.Debugf(ctx, "convertFile(ctx, '%s', '%s')", videoPath, storePath)
	defer func() { logger.Debugf(ctx, "/convertFile(ctx, '%s', '%s'): %v", videoPath, storePath, _err) }()

	r, err := rasterizer.New(glyph.Ramp(cfg.Ramp), rasterizer.OptionCellAspect(cfg.CellAspect))
	if err != nil {
		return fmt.Errorf("unable to initialize the rasterizer: %w", err)
	}

	src, err := libav.NewSource(ctx, videoPath, libav.Config{})
	if err != nil {
		return fmt.Errorf("unable to open '%s': %w", videoPath, err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			_err = multierror.Append(_err, fmt.Errorf("unable to close the video: %w", err))
		}
	}()
	if fps := src.FrameRate(); fps > 0 {
		logger.Infof(ctx, "the video is %dx%d at %.2f fps", src.Stream.Width, src.Stream.Height, fps)
	}

	store, err := framestore.Create(ctx, storePath)
	if err != nil {
		return err
	}

	stats, err := converter.Convert(ctx, src, r, store, cfg.Width)
	if closeErr := store.Close(); closeErr != nil {
		err = multierror.Append(err, closeErr)
	}
	if err != nil {
		return err
	}

	logger.Infof(ctx, "converted %d frames (%dx%d -> %dx%d) in %v, %s written; decoder stats: %#+v",
		stats.Frames, stats.SourceWidth, stats.SourceHeight, stats.Width, stats.Height,
		stats.Elapsed, humanize.Bytes(uint64(store.Bytes())), src.Stats(),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Video converted and saved to %s\n", storePath)
	return nil
}
