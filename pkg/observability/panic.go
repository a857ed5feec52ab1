package observability

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// Go runs fn in a new goroutine; a panic is logged, reported to the error
// monitor from ctx and then re-raised.
func Go(ctx context.Context, fn func()) {
	go Call(ctx, fn)
}

// GoSafe is Go that swallows the panic after reporting it.
func GoSafe(ctx context.Context, fn func()) {
	go CallSafe(ctx, fn)
}

func Call(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ReportPanic(ctx, r)
			panic(fmt.Sprintf("%#+v", r))
		}
	}()
	fn()
}

// CallSafe returns true if fn panicked.
func CallSafe(ctx context.Context, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			ReportPanic(ctx, r)
			panicked = true
		}
	}()
	fn()
	return false
}

func ReportPanic(ctx context.Context, r any) {
	logger.FromCtx(ctx).
		WithField("error_event_exception_stack_trace", string(debug.Stack())).
		Errorf("got panic: %v", r)
	errmon.ObserveRecoverCtx(ctx, r)
	belt.Flush(ctx)
}
