package commands

import (
	"github.com/spf13/cobra"
)

func root(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	showVersion, err := cmd.Flags().GetBool(flagVersion)
	assertNoError(ctx, err)
	if showVersion {
		printBuildInfo(cmd)
		return
	}

	videoPath, err := cmd.Flags().GetString(flagConvert)
	assertNoError(ctx, err)
	storePath, err := cmd.Flags().GetString(flagPlay)
	assertNoError(ctx, err)

	if videoPath == "" && storePath == "" {
		assertNoError(ctx, cmd.Help())
		return
	}

	cfg, err := getConfig(cmd)
	assertNoError(ctx, err)

	if videoPath != "" {
		assertNoError(ctx, convertFile(ctx, cmd, mustExpand(ctx, videoPath), cfg.Output, cfg))
	}
	if storePath != "" {
		assertNoError(ctx, playFile(ctx, cmd, mustExpand(ctx, storePath), cfg))
	}
}
