package main

import (
	"context"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	xlogrus "github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/xaionaro-go/asciivideo/cmd/asciivideo/commands"
	"github.com/xaionaro-go/asciivideo/pkg/observability"
)

func main() {
	observability.LogLevelFilter.SetLevel(commands.LoggerLevel)
	ll := xlogrus.DefaultLogrusLogger()
	l := xlogrus.New(ll).WithLevel(logger.LevelTrace).WithPreHooks(&observability.LogLevelFilter)

	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	err := commands.Root.ExecuteContext(ctx)
	if err != nil {
		logger.Fatal(ctx, err)
	}
}
