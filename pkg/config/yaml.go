package config

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

var (
	_ io.Reader     = (*Config)(nil)
	_ io.ReaderFrom = (*Config)(nil)
	_ io.WriterTo   = (*Config)(nil)
)

// Read parses the whole b as YAML over cfg.
func (cfg *Config) Read(b []byte) (int, error) {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return 0, fmt.Errorf("unable to parse YAML: %w", err)
	}
	return len(b), nil
}

func (cfg *Config) ReadFrom(r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return int64(len(b)), fmt.Errorf("unable to read: %w", err)
	}
	n, err := cfg.Read(b)
	return int64(n), err
}

func (cfg Config) WriteTo(w io.Writer) (int64, error) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("unable to serialize to YAML: %w", err)
	}
	n, err := w.Write(b)
	return int64(n), err
}
