// Package render maps generated samples onto a pixel buffer.
package render

import (
	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/clip"
	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/fixed"
	"github.com/san-kum/harmograph/internal/palette"
)

// ColourMode selects where sample colours come from.
type ColourMode int

const (
	ColourTable ColourMode = iota
	ColourMono
)

// Stats describes one render pass.
type Stats struct {
	Samples int
	Painted int
	Dropped int
	Cleared int
}

// Renderer owns the precomputed tables for one screen geometry.
type Renderer struct {
	gen     *curve.Generator
	colours palette.Table
	mono    palette.Table
	mask    *clip.Table
	mode    ColourMode
}

// New panics if the colour table does not match the generator shape; both
// are built from the same configuration at startup.
func New(gen *curve.Generator, colours palette.Table, mask *clip.Table) *Renderer {
	p := gen.Params()
	if len(colours) != gen.Len() {
		panic("render: colour table does not match generator shape")
	}
	return &Renderer{
		gen:     gen,
		colours: colours,
		mono:    palette.Mono(p.Families(), p.Iterations, palette.RGB555(31, 31, 31)),
		mask:    mask,
	}
}

func (r *Renderer) SetColourMode(m ColourMode) { r.mode = m }
func (r *Renderer) ColourMode() ColourMode     { return r.mode }
func (r *Renderer) Mask() *clip.Table          { return r.mask }

// Colours returns the table for the current colour mode.
func (r *Renderer) Colours() palette.Table {
	if r.mode == ColourMono {
		return r.mono
	}
	return r.colours
}

// Render clears dst inside the mask unless trails are on, then paints one
// frame of samples for animation time t. Samples that land outside the
// screen or the mask are dropped.
func (r *Renderer) Render(dst *buffer.Buffer, t curve.Angle, p *Params) Stats {
	var st Stats
	if !p.Trails {
		st.Cleared = dst.ClearSpans(r.mask)
	}

	colours := r.colours
	if r.mode == ColourMono {
		colours = r.mono
	}

	w, h := dst.Width, dst.Height
	cx, cy := int32(w/2), int32(h/2)
	scale, panX, panY := p.Scale, p.PanX, p.PanY
	pix := dst.Pix

	r.gen.Each(t, func(k int, pt curve.Point) {
		px := int((pt.X*scale)>>fixed.Shift + panX + cx)
		py := int((pt.Y*scale)>>fixed.Shift + panY + cy)
		if py < 0 || py >= h || px < 0 || px >= w || !r.mask.Contains(px, py) {
			st.Dropped++
			return
		}
		pix[py*w+px] = colours[k]
		st.Painted++
	})
	st.Samples = st.Painted + st.Dropped
	return st
}

// Project maps one sample to screen coordinates with the same arithmetic as
// Render. ok is false when the sample would be dropped.
func (r *Renderer) Project(pt curve.Point, w, h int, p *Params) (x, y int, ok bool) {
	x = int((pt.X*p.Scale)>>fixed.Shift + p.PanX + int32(w/2))
	y = int((pt.Y*p.Scale)>>fixed.Shift + p.PanY + int32(h/2))
	ok = y >= 0 && y < h && x >= 0 && x < w && r.mask.Contains(x, y)
	return x, y, ok
}
