package commands

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/asciivideo/pkg/config"
)

// getConfig builds the effective configuration: the built-in defaults,
// overlaid by the --config file, overlaid by the flags explicitly set.
func getConfig(cmd *cobra.Command) (config.Config, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	cfgPath, err := flags.GetString(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cfgPath != "" {
		cfgPath = mustExpand(ctx, cfgPath)
		if err := config.ReadConfigFromPath(cfgPath, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := overrideFromFlags(flags, &cfg); err != nil {
		return cfg, err
	}
	cfg.Output = mustExpand(ctx, cfg.Output)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Tracef(ctx, "effective config: %s", spew.Sdump(cfg))
	return cfg, nil
}

func overrideFromFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	if flags.Changed(flagOutput) {
		if cfg.Output, err = flags.GetString(flagOutput); err != nil {
			return err
		}
	}
	if flags.Changed(flagWidth) {
		if cfg.Width, err = flags.GetUint32(flagWidth); err != nil {
			return err
		}
	}
	if flags.Changed(flagFPS) {
		if cfg.FPS, err = flags.GetUint(flagFPS); err != nil {
			return err
		}
	}
	if flags.Changed(flagLoopPlayback) {
		if cfg.Loop, err = flags.GetBool(flagLoopPlayback); err != nil {
			return err
		}
	}
	if flags.Changed(flagRamp) {
		if cfg.Ramp, err = flags.GetString(flagRamp); err != nil {
			return err
		}
	}
	if flags.Changed(flagCellAspect) {
		if cfg.CellAspect, err = flags.GetFloat64(flagCellAspect); err != nil {
			return err
		}
	}
	return nil
}

func configInitCmd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg, err := getConfig(cmd)
	assertNoError(ctx, err)
	assertNoError(ctx, config.WriteConfigToPath(ctx, mustExpand(ctx, args[0]), cfg))
}
