package playback

import (
	"context"

	"github.com/xaionaro-go/asciivideo/pkg/clock"
)

// DefaultClearSequence clears the screen and moves the cursor home.
const DefaultClearSequence = "\x1b[2J\x1b[1;1H"

type Config struct {
	Clock         clock.Clock
	ClearSequence string
}

var DefaultConfig = func(ctx context.Context) Config {
	return Config{
		Clock:         clock.Get(),
		ClearSequence: DefaultClearSequence,
	}
}

type Option interface {
	Apply(cfg *Config)
}

type Options []Option

func (s Options) Config() Config {
	cfg := DefaultConfig(context.Background())
	for _, opt := range s {
		opt.Apply(&cfg)
	}
	return cfg
}

type OptionClock struct {
	clock.Clock
}

func (opt OptionClock) Apply(cfg *Config) {
	cfg.Clock = opt.Clock
}

type OptionClearSequence string

func (opt OptionClearSequence) Apply(cfg *Config) {
	cfg.ClearSequence = string(opt)
}
