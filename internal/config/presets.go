package config

import "sort"

// Presets are complete configurations keyed by name.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"dense": preset(func(c *Config) {
		c.Curve = CurveConfig{Count: 512, Step: 2, Iterations: 256}
	}),
	"sparse": preset(func(c *Config) {
		c.Curve = CurveConfig{Count: 256, Step: 16, Iterations: 128}
		c.View.Speed = 5
	}),
	"zoomed": preset(func(c *Config) {
		c.Screen.ClipRadius = 0
		c.View.Scale = 96
	}),
	"trails": preset(func(c *Config) {
		c.View.Trails = true
		c.View.Speed = 1
	}),
	"mono": preset(func(c *Config) {
		c.View.ColourMode = "mono"
	}),
}

func preset(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
