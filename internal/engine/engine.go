// Package engine runs the frame loop: input, parameter update, paint,
// vblank wait, flip and timing.
package engine

import (
	"context"
	"time"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/clip"
	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/fixed"
	"github.com/san-kum/harmograph/internal/palette"
	"github.com/san-kum/harmograph/internal/render"
)

// Options describes one engine instance. Zero values fall back to the
// classic demo settings.
type Options struct {
	TableBits  int
	Curve      curve.Params
	Width      int
	Height     int
	ClipRadius int
	View       render.Defaults
	Trails     bool
	Colour     render.ColourMode
	Repeat     control.Repeater
	MaxScale   int32
	MaxSpeed   int32
	VSync      buffer.VSync
	// ReportEvery is the number of frames averaged per timing report.
	ReportEvery int
	// OnReport, if set, is called from Step each time a report completes.
	OnReport func(Report)
}

const (
	DefaultTableBits   = 14
	DefaultWidth       = 256
	DefaultHeight      = 192
	DefaultClipRadius  = 96
	DefaultScale       = 48
	DefaultSpeed       = 3
	DefaultReportEvery = 60
)

func DefaultOptions() Options {
	return Options{
		TableBits:   DefaultTableBits,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		ClipRadius:  DefaultClipRadius,
		View:        render.Defaults{Speed: DefaultSpeed, Scale: DefaultScale},
		Repeat:      control.DefaultRepeater(),
		ReportEvery: DefaultReportEvery,
	}
}

func (o *Options) fill() {
	d := DefaultOptions()
	if o.TableBits == 0 {
		o.TableBits = d.TableBits
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.View.Scale == 0 {
		o.View.Scale = d.View.Scale
	}
	if o.Repeat == (control.Repeater{}) {
		o.Repeat = d.Repeat
	}
	if o.ReportEvery <= 0 {
		o.ReportEvery = d.ReportEvery
	}
	if o.Curve.Curves == 0 {
		o.Curve.Curves = 256
	}
	if o.Curve.Step == 0 {
		o.Curve.Step = 4
	}
	if o.Curve.Iterations == 0 {
		o.Curve.Iterations = 256
	}
	o.Curve.Derive(1 << o.TableBits)
}

// FrameStats describes one completed Step.
type FrameStats struct {
	Frame   uint64
	Time    curve.Angle
	Render  render.Stats
	Changes control.Changes
	Draw    time.Duration
	Sync    time.Duration
}

// Engine owns every table and buffer for one display. It is not safe for
// concurrent use; front ends call Step and read Front from one goroutine.
type Engine struct {
	opts     Options
	trig     *fixed.Table
	gen      *curve.Generator
	renderer *render.Renderer
	swap     *buffer.Swapper
	ctl      *control.Controller
	params   render.Params
	t        curve.Angle
	timing   timing
	now      func() time.Time
}

// New builds the tables and buffers. Options are expected to be validated;
// an impossible shape panics.
func New(opts Options) *Engine {
	opts.fill()

	trig := fixed.Build(fixed.QuarterWave(1 << opts.TableBits))
	gen := curve.New(trig, opts.Curve)
	p := gen.Params()
	r := render.New(gen,
		palette.Build(p.Families(), p.Iterations),
		clip.Build(opts.Width, opts.Height, opts.ClipRadius))
	r.SetColourMode(opts.Colour)

	ctl := control.New(opts.View, opts.Repeat)
	if opts.MaxScale > 0 {
		ctl.MaxScale = opts.MaxScale
	}
	if opts.MaxSpeed > 0 {
		ctl.MaxSpeed = opts.MaxSpeed
	}

	e := &Engine{
		opts:     opts,
		trig:     trig,
		gen:      gen,
		renderer: r,
		swap:     buffer.NewSwapper(opts.Width, opts.Height, opts.VSync),
		ctl:      ctl,
		params:   render.NewParams(opts.View),
		now:      time.Now,
	}
	e.timing.every = opts.ReportEvery
	if opts.Trails {
		e.params.Trails = true
		e.swap.SetMode(buffer.ModeAccumulate)
	}
	return e
}

// Step runs one frame. The returned error is non-nil only when the vblank
// wait was cancelled; the frame has then been painted but not flipped.
func (e *Engine) Step(ctx context.Context, in control.Input) (FrameStats, error) {
	fs := FrameStats{Time: e.t}

	fs.Changes = e.ctl.Apply(in, &e.params)
	if fs.Changes.Trails {
		if e.params.Trails {
			e.swap.SetMode(buffer.ModeAccumulate)
		} else {
			e.swap.SetMode(buffer.ModeDouble)
		}
	}

	start := e.now()
	fs.Render = e.renderer.Render(e.swap.Back(), e.t, &e.params)
	drawn := e.now()

	if err := e.swap.Flip(ctx); err != nil {
		return fs, err
	}
	synced := e.now()

	e.t = (e.t + e.params.Speed) & e.trig.Mask()
	fs.Frame = e.swap.Frames()
	fs.Draw = drawn.Sub(start)
	fs.Sync = synced.Sub(start)

	if rep, ok := e.timing.add(fs.Draw, fs.Sync, e.params.Speed, fs.Frame); ok && e.opts.OnReport != nil {
		e.opts.OnReport(rep)
	}
	return fs, nil
}

// Source supplies the input for each frame of Run.
type Source interface {
	Next(frame uint64) control.Input
}

// SourceFunc adapts a function to Source.
type SourceFunc func(frame uint64) control.Input

func (f SourceFunc) Next(frame uint64) control.Input { return f(frame) }

// Idle is a Source with no input.
var Idle = SourceFunc(func(uint64) control.Input { return control.Input{} })

// Run steps frames until ctx is done or, when frames > 0, that many frames
// have been drawn.
func (e *Engine) Run(ctx context.Context, src Source, frames int) error {
	if src == nil {
		src = Idle
	}
	for i := 0; frames <= 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.Step(ctx, src.Next(e.swap.Frames())); err != nil {
			return err
		}
	}
	return nil
}

// Front returns the buffer currently on display.
func (e *Engine) Front() *buffer.Buffer { return e.swap.Front() }

func (e *Engine) Params() render.Params           { return e.params }
func (e *Engine) Time() curve.Angle               { return e.t }
func (e *Engine) Frames() uint64                  { return e.swap.Frames() }
func (e *Engine) Mode() buffer.Mode               { return e.swap.Mode() }
func (e *Engine) Report() Report                  { return e.timing.last }
func (e *Engine) Generator() *curve.Generator     { return e.gen }
func (e *Engine) Renderer() *render.Renderer      { return e.renderer }
func (e *Engine) Controller() *control.Controller { return e.ctl }
func (e *Engine) Size() (w, h int)                { return e.opts.Width, e.opts.Height }

// SetTime moves the animation to t, wrapped to the table.
func (e *Engine) SetTime(t curve.Angle) { e.t = t & e.trig.Mask() }

// Samples returns the sample set for the current animation time.
func (e *Engine) Samples(dst []curve.Point) []curve.Point {
	return e.gen.Generate(e.t, dst)
}
