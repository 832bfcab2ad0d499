package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/wobbly/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params != dynamo.DefaultParams() {
		t.Errorf("expected default params, got %+v", cfg.Params)
	}
	if cfg.Integrator != "verlet" {
		t.Errorf("expected integrator verlet, got %s", cfg.Integrator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("slowmo")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.SlowdownFactor != 4 {
		t.Errorf("expected slowdown 4, got %f", cfg.Params.SlowdownFactor)
	}

	cfg.Params.SpringK = 2
	if Presets["slowmo"].Params.SpringK != 8 {
		t.Error("mutating a returned preset should not change the table")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"default", "jelly", "slowmo", "stiff"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"spring too stiff", func(c *Config) { c.Params.SpringK = 12 }, dynamo.ErrParameterBounds},
		{"friction too low", func(c *Config) { c.Params.Friction = 1 }, dynamo.ErrParameterBounds},
		{"unknown integrator", func(c *Config) { c.Integrator = "leapfrog" }, dynamo.ErrUnknownIntegrator},
		{"empty surface", func(c *Config) { c.Surface.Width = 0 }, dynamo.ErrParameterBounds},
		{"no frame interval", func(c *Config) { c.FrameIntervalMs = 0 }, dynamo.ErrParameterBounds},
		{"no tiles", func(c *Config) { c.Tiles = 0 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wobbly.yaml")
	cfg := GetPreset("jelly")
	cfg.Surface.Width = 640

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Params != cfg.Params || loaded.Surface != cfg.Surface {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("params:\n  spring_k: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Params.SpringK != 4 {
		t.Errorf("expected spring_k 4, got %f", cfg.Params.SpringK)
	}
	if cfg.Params.Friction != dynamo.DefaultFriction {
		t.Errorf("expected default friction, got %f", cfg.Params.Friction)
	}
	if cfg.Tiles != DefaultConfig().Tiles {
		t.Errorf("expected default tiles, got %d", cfg.Tiles)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("params:\n  movement_range: 9000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
}
