package config

import (
	"sort"

	"github.com/san-kum/wobbly/internal/dynamo"
)

func preset(p dynamo.Params) *Config {
	cfg := DefaultConfig()
	cfg.Params = p
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"jelly": preset(dynamo.Params{
		SpringK: 3, Friction: 2, SlowdownFactor: 1, MovementRange: 200,
	}),
	"stiff": preset(dynamo.Params{
		SpringK: 10, Friction: 8, SlowdownFactor: 1, MovementRange: 40,
	}),
	"slowmo": preset(dynamo.Params{
		SpringK: 8, Friction: 3, SlowdownFactor: 4, MovementRange: 100,
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
