package commands

import (
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/spf13/cobra"
)

var (
	// Access these variables only from a main package:

	Root = &cobra.Command{
		Use:   "asciivideo",
		Short: "converts videos to ASCII art and plays them back in the terminal",
		Long: "asciivideo converts every frame of a video into ASCII art and stores the result in a plain text file,\n" +
			"which may then be replayed in a terminal. Both modes may be used in one invocation:\n" +
			"the conversion is done first.",
		Args:              cobra.ExactArgs(0),
		PersistentPreRun:  persistentPreRun,
		PersistentPostRun: persistentPostRun,
		Run:               root,
	}

	Convert = &cobra.Command{
		Use:   "convert <video> [store]",
		Short: "convert a video into a frame store",
		Args:  cobra.RangeArgs(1, 2),
		Run:   convertCmd,
	}

	Play = &cobra.Command{
		Use:   "play <store>",
		Short: "play a frame store in the terminal",
		Args:  cobra.ExactArgs(1),
		Run:   playCmd,
	}

	Config = &cobra.Command{
		Use: "config",
	}

	ConfigInit = &cobra.Command{
		Use:   "init <path>",
		Short: "write the effective configuration as YAML",
		Args:  cobra.ExactArgs(1),
		Run:   configInitCmd,
	}

	Version = &cobra.Command{
		Use:   "version",
		Short: "print the build information as JSON",
		Args:  cobra.ExactArgs(0),
		Run:   versionCmd,
	}

	LoggerLevel = logger.LevelWarning
)

const (
	flagConvert           = "convert"
	flagPlay              = "play"
	flagOutput            = "output"
	flagWidth             = "width"
	flagFPS               = "fps"
	flagLoopPlayback      = "loop-playback"
	flagRamp              = "ramp"
	flagCellAspect        = "cell-aspect"
	flagConfig            = "config"
	flagLogFile           = "log-file"
	flagSentryDSN         = "sentry-dsn"
	flagMetricsListenAddr = "metrics-listen-addr"
	flagVersion           = "version"
)

func init() {
	Root.AddCommand(Convert)
	Root.AddCommand(Play)
	Root.AddCommand(Config)
	Config.AddCommand(ConfigInit)
	Root.AddCommand(Version)

	Root.SetOut(os.Stdout)

	persistent := Root.PersistentFlags()
	persistent.Var(&LoggerLevel, "log-level", "logging level")
	persistent.String(flagLogFile, "", "also write logs to this file")
	persistent.String(flagSentryDSN, "", "report errors to Sentry at this DSN")
	persistent.String(flagMetricsListenAddr, "", "serve Prometheus metrics at this address (e.g. 'localhost:9090')")
	persistent.String(flagConfig, "", "the path to a YAML config file with the defaults")
	persistent.StringP(flagOutput, "o", "output.txt", "the frame store path (a '.gz' suffix enables compression)")
	persistent.Uint32P(flagWidth, "w", 80, "the width of the ASCII frames, in characters")
	persistent.UintP(flagFPS, "f", 24, "the playback frame rate")
	persistent.BoolP(flagLoopPlayback, "l", false, "restart the playback after the last frame")
	persistent.String(flagRamp, "", "the glyph ramp, from the darkest to the brightest")
	persistent.Float64(flagCellAspect, 0, "the vertical correction for terminal cells being taller than wide")

	Root.Flags().StringP(flagConvert, "c", "", "the video to convert")
	Root.Flags().StringP(flagPlay, "p", "", "the frame store to play")
	Root.Flags().Bool(flagVersion, false, "print the build information as JSON and exit")
}
