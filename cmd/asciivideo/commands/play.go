package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/spf13/cobra"
	"github.com/xaionaro-go/asciivideo/pkg/config"
	"github.com/xaionaro-go/asciivideo/pkg/framestore"
	"github.com/xaionaro-go/asciivideo/pkg/playback"
	"golang.org/x/term"
)

func playCmd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg, err := getConfig(cmd)
	assertNoError(ctx, err)
	assertNoError(ctx, playFile(ctx, cmd, mustExpand(ctx, args[0]), cfg))
}

func playFile(
	ctx context.Context,
	cmd *cobra.Command,
	storePath string,
	cfg config.Config,
) (_err error) {
	logger.Debugf(ctx, "playFile(ctx, '%s', %d, %t)", storePath, cfg.FPS, cfg.Loop)
	defer func() { logger.Debugf(ctx, "/playFile(ctx, '%s'): %v", storePath, _err) }()

	frames, err := framestore.LoadFile(ctx, storePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		logger.Warnf(ctx, "the output is not a terminal, the clear-screen sequences will be written as is")
	}

	p := playback.New(out)
	err = p.Play(ctx, frames, cfg.FPS, cfg.Loop)
	logger.Debugf(ctx, "playback stats: %#+v", p.Stats())
	if errors.Is(err, context.Canceled) {
		logger.Infof(ctx, "playback interrupted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to play '%s': %w", storePath, err)
	}
	return nil
}
