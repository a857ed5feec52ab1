package commands

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/asticode/go-astiav"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	errmonsentry "github.com/facebookincubator/go-belt/tool/experimental/errmon/implementation/sentry"
	"github.com/facebookincubator/go-belt/tool/logger"
	xlogrus "github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xaionaro-go/asciivideo/pkg/astiavlogger"
	"github.com/xaionaro-go/asciivideo/pkg/observability"
)

var closeFuncs []func()

func persistentPreRun(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	observability.LogLevelFilter.SetLevel(LoggerLevel)
	logrus.SetLevel(xlogrus.LevelToLogrus(LoggerLevel))

	l := logger.FromCtx(ctx)
	logFile, err := cmd.Flags().GetString(flagLogFile)
	assertNoError(ctx, err)
	if logFile != "" {
		logFile = mustExpand(ctx, logFile)
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0640)
		if err != nil {
			l.Errorf("failed to open log file '%s': %v", logFile, err)
		} else {
			if emitter, ok := l.Emitter().(*xlogrus.Emitter); ok {
				emitter.LogrusEntry.Logger.SetOutput(io.MultiWriter(os.Stderr, f))
			}
			closeFuncs = append(closeFuncs, func() { f.Close() })
		}
	}

	sentryDSN, err := cmd.Flags().GetString(flagSentryDSN)
	assertNoError(ctx, err)
	if sentryDSN != "" {
		l.Infof("setting up Sentry at '%s'", observability.RedactDSN(sentryDSN))
		sentryClient, err := sentry.NewClient(sentry.ClientOptions{
			Dsn: sentryDSN,
		})
		assertNoError(ctx, err)
		sentryErrorMonitor := errmonsentry.New(sentryClient)
		ctx = errmon.CtxWithErrorMonitor(ctx, sentryErrorMonitor)
		l = l.WithPreHooks(observability.NewErrorMonitorLoggerHook(ctx, sentryErrorMonitor))
	}
	ctx = logger.CtxWithLogger(ctx, l)

	ctx = belt.WithField(ctx, "program", Root.Name())
	ctx = belt.WithField(ctx, "pid", os.Getpid())
	ctx = belt.WithField(ctx, "run_id", uuid.New().String())

	l = logger.FromCtx(ctx)
	logger.Default = func() logger.Logger {
		return l
	}

	astiav.SetLogLevel(astiavlogger.LogLevelToAstiav(LoggerLevel))
	astiav.SetLogCallback(astiavlogger.Callback(l))

	metricsAddr, err := cmd.Flags().GetString(flagMetricsListenAddr)
	assertNoError(ctx, err)
	if metricsAddr != "" {
		observability.Go(ctx, func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			l.Infof("starting to listen for metrics requests at '%s'", metricsAddr)
			l.Error(http.ListenAndServe(metricsAddr, mux))
		})
	}

	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	closeFuncs = append(closeFuncs, cancelFn)

	cmd.SetContext(ctx)
	logger.Debugf(ctx, "log-level: %v", LoggerLevel)
}

func persistentPostRun(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	logger.Debug(ctx, "end")
	for i := len(closeFuncs) - 1; i >= 0; i-- {
		closeFuncs[i]()
	}
	belt.Flush(ctx)
}
