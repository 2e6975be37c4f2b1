package render

// Params is the mutable view state. It is changed only between frames by
// the interaction controller and read-only during Render.
type Params struct {
	// Speed is the animation-time delta per frame; zero means paused.
	Speed int32
	// OldSpeed is restored when pause is toggled off.
	OldSpeed int32
	// Scale is pixels per fixed-point unit.
	Scale  int32
	PanX   int32
	PanY   int32
	Trails bool
}

func (p Params) Paused() bool { return p.Speed == 0 }

// Defaults holds the values a reset returns to.
type Defaults struct {
	Speed int32
	Scale int32
	PanX  int32
	PanY  int32
}

func NewParams(d Defaults) Params {
	return Params{
		Speed:    d.Speed,
		OldSpeed: d.Speed,
		Scale:    d.Scale,
		PanX:     d.PanX,
		PanY:     d.PanY,
	}
}
