package rasterizer

import (
	"context"
)

// DefaultCellAspect compensates for terminal cells being taller than wide.
const DefaultCellAspect = 0.6

type Config struct {
	CellAspect float64
}

var DefaultConfig = func(ctx context.Context) Config {
	return Config{
		CellAspect: DefaultCellAspect,
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

type OptionCellAspect float64

func (opt OptionCellAspect) Apply(cfg *Config) {
	cfg.CellAspect = float64(opt)
}
