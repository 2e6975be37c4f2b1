package config

import (
	"errors"
	"strings"
)

const (
	MinTableBits = 4
	MaxTableBits = 20
	// MaxScaleLimit keeps x*scale inside int32 for |x| <= 2 units.
	MaxScaleLimit = 1 << 17
	MaxScreen     = 4096
	// MaxFeedback keeps x*feedback inside int32 for |x| <= 2 units.
	MaxFeedback = 1<<18 - 1
)

// Backends lists the accepted window back ends. "headless" renders without
// a window.
var Backends = []string{"raylib", "ebiten", "headless"}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, v any, err error) {
		errs = append(errs, &FieldError{Field: field, Value: v, Err: err})
	}

	if c.TableBits < MinTableBits || c.TableBits > MaxTableBits {
		bad("table_bits", c.TableBits, ErrTableSize)
	}

	if c.Curve.Count <= 0 {
		bad("curve.count", c.Curve.Count, ErrCurveShape)
	}
	if c.Curve.Step <= 0 || c.Curve.Step > c.Curve.Count {
		bad("curve.step", c.Curve.Step, ErrCurveShape)
	}
	if c.Curve.Iterations <= 0 {
		bad("curve.iterations", c.Curve.Iterations, ErrCurveShape)
	}
	if c.Curve.Feedback < 0 || c.Curve.Feedback > MaxFeedback {
		bad("curve.feedback", c.Curve.Feedback, ErrCurveShape)
	}

	if c.Screen.Width <= 0 || c.Screen.Width > MaxScreen {
		bad("screen.width", c.Screen.Width, ErrScreen)
	}
	if c.Screen.Height <= 0 || c.Screen.Height > MaxScreen {
		bad("screen.height", c.Screen.Height, ErrScreen)
	}
	if c.Screen.ClipRadius < 0 {
		bad("screen.clip_radius", c.Screen.ClipRadius, ErrScreen)
	}

	if c.View.MaxScale < 1 || c.View.MaxScale > MaxScaleLimit {
		bad("view.max_scale", c.View.MaxScale, ErrScale)
	}
	if c.View.Scale < 1 || c.View.Scale > c.View.MaxScale {
		bad("view.scale", c.View.Scale, ErrScale)
	}
	if c.View.MaxSpeed < 1 {
		bad("view.max_speed", c.View.MaxSpeed, ErrScale)
	}
	if c.View.Speed < -c.View.MaxSpeed || c.View.Speed > c.View.MaxSpeed {
		bad("view.speed", c.View.Speed, ErrScale)
	}
	switch strings.ToLower(c.View.ColourMode) {
	case "", "table", "mono":
	default:
		bad("view.colour_mode", c.View.ColourMode, ErrColourMode)
	}

	if c.Input.RepeatDelay < 0 || c.Input.RepeatInterval < 1 {
		bad("input", c.Input, ErrInput)
	}
	if c.FPS <= 0 {
		bad("fps", c.FPS, ErrScreen)
	}

	if !validBackend(c.Backend) {
		bad("backend", c.Backend, ErrBackend)
	}

	return errors.Join(errs...)
}

func validBackend(name string) bool {
	for _, b := range Backends {
		if strings.EqualFold(b, name) {
			return true
		}
	}
	return false
}
