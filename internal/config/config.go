package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/host"
	"github.com/san-kum/wobbly/internal/integrators"
)

const (
	DefaultFrameIntervalMs = 16
	DefaultWidth           = 320
	DefaultHeight          = 200
	DefaultIntegrator      = "verlet"
	DefaultDataDir         = ".wobbly"
)

type Config struct {
	Params          dynamo.Params `yaml:"params"`
	Surface         SurfaceConfig `yaml:"surface"`
	FrameIntervalMs int           `yaml:"frame_interval_ms"`
	Integrator      string        `yaml:"integrator"`
	Tiles           int           `yaml:"tiles"`
	DataDir         string        `yaml:"data_dir"`
}

type SurfaceConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (s SurfaceConfig) Position() dynamo.Vector { return dynamo.Vector{X: s.X, Y: s.Y} }
func (s SurfaceConfig) Size() dynamo.Vector     { return dynamo.Vector{X: s.Width, Y: s.Height} }

func DefaultConfig() *Config {
	return &Config{
		Params: dynamo.DefaultParams(),
		Surface: SurfaceConfig{
			X:      40,
			Y:      40,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		FrameIntervalMs: DefaultFrameIntervalMs,
		Integrator:      DefaultIntegrator,
		Tiles:           host.DefaultTiles,
		DataDir:         DefaultDataDir,
	}
}

// Load reads a YAML config. Keys missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if _, err := integrators.ByName(c.Integrator); err != nil {
		return err
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface %vx%v: %w", c.Surface.Width, c.Surface.Height, dynamo.ErrParameterBounds)
	}
	if c.FrameIntervalMs <= 0 {
		return fmt.Errorf("frame_interval_ms %d: %w", c.FrameIntervalMs, dynamo.ErrParameterBounds)
	}
	if c.Tiles < 1 {
		return fmt.Errorf("tiles %d: %w", c.Tiles, dynamo.ErrParameterBounds)
	}
	return nil
}

// NewIntegrator returns a constructor for the configured integrator. The
// name must already have passed Validate.
func (c *Config) NewIntegrator() func() dynamo.Integrator {
	name := c.Integrator
	return func() dynamo.Integrator {
		integ, err := integrators.ByName(name)
		if err != nil {
			return integrators.NewVerlet()
		}
		return integ
	}
}
