package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/render"
)

const (
	DefaultTableBits  = 14
	DefaultWidth      = 256
	DefaultHeight     = 192
	DefaultClipRadius = 96
	DefaultCurves     = 256
	DefaultStep       = 4
	DefaultIterations = 256
	DefaultScale      = 48
	DefaultSpeed      = 3
	DefaultMaxScale   = 4096
	DefaultMaxSpeed   = 256
	DefaultFPS        = 60
	DefaultBackend    = "raylib"
	DefaultTheme      = "cyberpunk"
)

type Config struct {
	Screen    ScreenConfig `yaml:"screen"`
	TableBits int          `yaml:"table_bits"`
	Curve     CurveConfig  `yaml:"curve"`
	View      ViewConfig   `yaml:"view"`
	Input     InputConfig  `yaml:"input"`
	FPS       int          `yaml:"fps"`
	Backend   string       `yaml:"backend"`
	Theme     string       `yaml:"theme"`
}

type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	ClipRadius int `yaml:"clip_radius"`
}

// CurveConfig shapes the curve family. Zero increments and feedback are
// derived from the table size.
type CurveConfig struct {
	Count      int   `yaml:"count"`
	Step       int   `yaml:"step"`
	Iterations int   `yaml:"iterations"`
	Ang1Inc    int32 `yaml:"ang1_inc,omitempty"`
	Ang2Inc    int32 `yaml:"ang2_inc,omitempty"`
	Feedback   int32 `yaml:"feedback,omitempty"`
}

type ViewConfig struct {
	Scale      int32  `yaml:"scale"`
	PanX       int32  `yaml:"pan_x"`
	PanY       int32  `yaml:"pan_y"`
	Speed      int32  `yaml:"speed"`
	Trails     bool   `yaml:"trails"`
	ColourMode string `yaml:"colour_mode"`
	MaxScale   int32  `yaml:"max_scale"`
	MaxSpeed   int32  `yaml:"max_speed"`
}

// InputConfig sets key repeat in frames.
type InputConfig struct {
	RepeatDelay    int `yaml:"repeat_delay"`
	RepeatInterval int `yaml:"repeat_interval"`
}

func DefaultConfig() *Config {
	r := control.DefaultRepeater()
	return &Config{
		Screen: ScreenConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			ClipRadius: DefaultClipRadius,
		},
		TableBits: DefaultTableBits,
		Curve: CurveConfig{
			Count:      DefaultCurves,
			Step:       DefaultStep,
			Iterations: DefaultIterations,
		},
		View: ViewConfig{
			Scale:      DefaultScale,
			Speed:      DefaultSpeed,
			ColourMode: "table",
			MaxScale:   DefaultMaxScale,
			MaxSpeed:   DefaultMaxSpeed,
		},
		Input: InputConfig{
			RepeatDelay:    r.Delay,
			RepeatInterval: r.Interval,
		},
		FPS:     DefaultFPS,
		Backend: DefaultBackend,
		Theme:   DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, so a file only needs the fields it
// changes.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
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

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Clone returns a deep copy; Config holds no references.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// TableSize is the number of trig table entries.
func (c *Config) TableSize() int { return 1 << c.TableBits }

// CurveParams returns the generator parameters with derived fields filled.
func (c *Config) CurveParams() curve.Params {
	p := curve.Params{
		Curves:     c.Curve.Count,
		Step:       c.Curve.Step,
		Iterations: c.Curve.Iterations,
		Ang1Inc:    c.Curve.Ang1Inc,
		Ang2Inc:    c.Curve.Ang2Inc,
		Feedback:   c.Curve.Feedback,
	}
	p.Derive(c.TableSize())
	return p
}

// Defaults returns the view a reset returns to.
func (c *Config) Defaults() render.Defaults {
	return render.Defaults{
		Speed: c.View.Speed,
		Scale: c.View.Scale,
		PanX:  c.View.PanX,
		PanY:  c.View.PanY,
	}
}

func (c *Config) ColourMode() render.ColourMode {
	if strings.EqualFold(c.View.ColourMode, "mono") {
		return render.ColourMono
	}
	return render.ColourTable
}

func (c *Config) Repeater() control.Repeater {
	return control.Repeater{Delay: c.Input.RepeatDelay, Interval: c.Input.RepeatInterval}
}
