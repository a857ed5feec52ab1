// Package config holds the user-level defaults of the command line tool.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/asciivideo/pkg/glyph"
	"github.com/xaionaro-go/asciivideo/pkg/rasterizer"
)

type Config struct {
	Width      uint32  `yaml:"width"`
	Output     string  `yaml:"output"`
	FPS        uint    `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
	Ramp       string  `yaml:"ramp"`
	CellAspect float64 `yaml:"cell_aspect"`
}

func DefaultConfig() Config {
	return Config{
		Width:      80,
		Output:     "output.txt",
		FPS:        24,
		Ramp:       string(glyph.DefaultRamp),
		CellAspect: rasterizer.DefaultCellAspect,
	}
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.Width == 0 {
		errs = append(errs, fmt.Errorf("width must be positive"))
	}
	if cfg.FPS == 0 {
		errs = append(errs, fmt.Errorf("fps must be positive"))
	}
	if cfg.CellAspect <= 0 {
		errs = append(errs, fmt.Errorf("cell_aspect must be positive, got %v", cfg.CellAspect))
	}
	if err := glyph.Ramp(cfg.Ramp).Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ReadConfigFromPath overlays the file content over cfg: keys missing in
// the file keep their current values.
func ReadConfigFromPath(
	cfgPath string,
	cfg *Config,
) error {
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("unable to read file '%s': %w", cfgPath, err)
	}

	if _, err := cfg.Read(b); err != nil {
		return fmt.Errorf("unable to parse '%s': %w", cfgPath, err)
	}
	return nil
}

func WriteConfigToPath(
	ctx context.Context,
	cfgPath string,
	cfg Config,
) error {
	pathNew := cfgPath + ".new"
	f, err := os.OpenFile(pathNew, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("unable to open the file '%s': %w", pathNew, err)
	}
	_, err = cfg.WriteTo(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("unable to write data to file '%s': %w", pathNew, err)
	}
	err = os.Rename(pathNew, cfgPath)
	if err != nil {
		return fmt.Errorf("cannot move '%s' to '%s': %w", pathNew, cfgPath, err)
	}
	logger.Infof(ctx, "wrote to '%s' config %#+v", cfgPath, cfg)
	return nil
}
