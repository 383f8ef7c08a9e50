package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
)

const (
	DefaultRows     = 50
	DefaultCols     = 80
	DefaultTheme    = "classic"
	DefaultLogLevel = "info"
	DefaultHistory  = 120
)

// ErrInvalid indicates a configuration value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Rows       int       `yaml:"rows"`
	Cols       int       `yaml:"cols"`
	IntervalMs int       `yaml:"interval_ms"`
	Density    float64   `yaml:"density"`
	Seed       int64     `yaml:"seed"`
	Preset     string    `yaml:"preset"`
	Theme      string    `yaml:"theme"`
	History    int       `yaml:"history"`
	Log        LogConfig `yaml:"log"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:       DefaultRows,
		Cols:       DefaultCols,
		IntervalMs: sim.DefaultIntervalMs,
		Density:    life.DefaultDensity,
		Theme:      DefaultTheme,
		History:    DefaultHistory,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[config.Load] failed to read file: %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "[config.Load] failed to unmarshal file: %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "[config.Save] failed to marshal config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "[config.Save] failed to write file: %s", path)
}

// Validate rejects impossible sizes and densities and clamps the interval
// into the controller's range.
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, c.Rows, c.Cols)
	}
	if c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("%w: density %v not in [0,1]", ErrInvalid, c.Density)
	}
	if c.Preset != "" {
		if _, ok := life.Presets[c.Preset]; !ok {
			return fmt.Errorf("%w: preset %q", ErrInvalid, c.Preset)
		}
	}
	if c.History <= 0 {
		c.History = DefaultHistory
	}
	switch {
	case c.IntervalMs < sim.MinIntervalMs:
		c.IntervalMs = sim.MinIntervalMs
	case c.IntervalMs > sim.MaxIntervalMs:
		c.IntervalMs = sim.MaxIntervalMs
	}
	return nil
}
