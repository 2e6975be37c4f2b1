package engine

import (
	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/config"
)

// OptionsFromConfig maps a validated configuration onto engine options.
func OptionsFromConfig(cfg *config.Config, vsync buffer.VSync) Options {
	return Options{
		TableBits:   cfg.TableBits,
		Curve:       cfg.CurveParams(),
		Width:       cfg.Screen.Width,
		Height:      cfg.Screen.Height,
		ClipRadius:  cfg.Screen.ClipRadius,
		View:        cfg.Defaults(),
		Trails:      cfg.View.Trails,
		Colour:      cfg.ColourMode(),
		Repeat:      cfg.Repeater(),
		MaxScale:    cfg.View.MaxScale,
		MaxSpeed:    cfg.View.MaxSpeed,
		VSync:       vsync,
		ReportEvery: DefaultReportEvery,
	}
}

// FromConfig validates cfg and builds an engine.
func FromConfig(cfg *config.Config, vsync buffer.VSync) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(OptionsFromConfig(cfg, vsync)), nil
}
