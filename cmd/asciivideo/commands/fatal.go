package commands

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asciivideo/pkg/xpath"
)

func assertNoError(
	ctx context.Context,
	err error,
) {
	if err != nil {
		logger.Fatal(ctx, err)
	}
}

func mustExpand(
	ctx context.Context,
	rawPath string,
) string {
	p, err := xpath.Expand(rawPath)
	assertNoError(ctx, err)
	return p
}
