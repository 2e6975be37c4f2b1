package control

import "github.com/san-kum/harmograph/internal/render"

const (
	DefaultMaxScale int32 = 4096
	DefaultMaxSpeed int32 = 256
	maxPan          int32 = 1 << 15

	panStep   int32 = 1
	panFast   int32 = 4
	zoomStep  int32 = 1
	zoomFast  int32 = 8
	speedStep int32 = 1
	speedFast int32 = 8
)

// Changes reports what an Apply call did that the frame loop must act on.
type Changes struct {
	// Trails is set when the trails flag flipped; the swapper mode has to
	// follow before the next paint.
	Trails bool
	Pause  bool
	Reset  bool
	Scale  bool
	Speed  bool
}

// Controller applies one frame of input to the view parameters.
type Controller struct {
	Defaults render.Defaults
	Repeat   Repeater
	MaxScale int32
	MaxSpeed int32

	zoomIn, zoomOut  counter
	speedUp, speedDn counter
	suppressScale    bool
}

func New(d render.Defaults, r Repeater) *Controller {
	return &Controller{
		Defaults: d,
		Repeat:   r,
		MaxScale: DefaultMaxScale,
		MaxSpeed: DefaultMaxSpeed,
	}
}

// Apply mutates p for one frame. It must only be called between frames.
func (c *Controller) Apply(in Input, p *render.Params) Changes {
	var ch Changes

	if in.Pressed&Pause != 0 {
		if p.Speed != 0 {
			p.OldSpeed = p.Speed
			p.Speed = 0
		} else {
			p.Speed = p.OldSpeed
		}
		ch.Pause = true
	}

	if in.Pressed&Trails != 0 {
		p.Trails = !p.Trails
		ch.Trails = true
	}

	fast := in.Held&Fast != 0

	pan := panStep
	if fast {
		pan = panFast
	}
	if in.Held&PanLeft != 0 {
		p.PanX -= pan
	}
	if in.Held&PanRight != 0 {
		p.PanX += pan
	}
	if in.Held&PanUp != 0 {
		p.PanY -= pan
	}
	if in.Held&PanDown != 0 {
		p.PanY += pan
	}
	p.PanX = clamp(p.PanX, -maxPan, maxPan)
	p.PanY = clamp(p.PanY, -maxPan, maxPan)

	// Counters advance every frame so a key still held after a reset does
	// not register as a fresh press.
	in1 := c.zoomIn.tick(c.Repeat, in.Held&ZoomIn != 0)
	out1 := c.zoomOut.tick(c.Repeat, in.Held&ZoomOut != 0)

	if in.Pressed&Reset != 0 || in.Held.Has(ZoomIn|ZoomOut) {
		p.Scale = c.Defaults.Scale
		p.PanX = c.Defaults.PanX
		p.PanY = c.Defaults.PanY
		c.suppressScale = true
		ch.Reset = true
	} else if c.suppressScale {
		c.suppressScale = false
	} else if in1 != out1 {
		step := zoomStep
		if fast {
			step = zoomFast
		}
		if out1 {
			step = -step
		}
		p.Scale = clamp(p.Scale+step, 1, c.maxScale())
		ch.Scale = true
	}

	up := c.speedUp.tick(c.Repeat, in.Held&SpeedUp != 0)
	down := c.speedDn.tick(c.Repeat, in.Held&SpeedDown != 0)
	if up != down {
		step := speedStep
		if fast {
			step = speedFast
		}
		if down {
			step = -step
		}
		lim := c.maxSpeed()
		p.Speed = clamp(p.Speed+step, -lim, lim)
		ch.Speed = true
	}

	return ch
}

func (c *Controller) maxScale() int32 {
	if c.MaxScale < 1 {
		return DefaultMaxScale
	}
	return c.MaxScale
}

func (c *Controller) maxSpeed() int32 {
	if c.MaxSpeed < 1 {
		return DefaultMaxSpeed
	}
	return c.MaxSpeed
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
