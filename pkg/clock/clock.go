// Package clock provides the process-wide time source, replaceable in tests.
package clock

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

type Clock = clock.Clock
type Timer = clock.Timer
type Mock = clock.Mock

var globalClock Clock = clock.New()

func Get() Clock {
	return globalClock
}

func Set(clk Clock) {
	globalClock = clk
}

func New() Clock {
	return clock.New()
}

func NewMock() *Mock {
	return clock.NewMock()
}

// Sleep blocks for d on clk or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, clk Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := clk.Timer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
