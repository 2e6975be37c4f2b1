// Package curve implements the harmonograph recurrence.
//
// Each frame, every curve family starts from the origin and iterates
//
//	x' = sin(ang1 + x) + sin(ang2 + y)
//	y' = cos(ang1 + x) + cos(ang2 + y)
//
// so the running coordinate feeds back into the next angle lookup. The
// output is a pure function of the animation time and the trig table.
package curve

import (
	"fmt"

	"github.com/san-kum/harmograph/internal/fixed"
)

// Angle is a phase accumulator in table units.
type Angle = int32

// Point is one generated sample in Q.12, bounded to [-2*Unit, 2*Unit].
type Point struct {
	X, Y int32
}

// Params fixes the curve family. Increments and Feedback are in table
// units; Feedback scales a Q.12 coordinate into an angle.
type Params struct {
	Curves     int
	Step       int
	Iterations int
	Ang1Inc    Angle
	Ang2Inc    Angle
	Feedback   int32
}

// Denominator of the slow precession increment: Ang1Inc is Step/235 of a
// full turn.
const aspectDenominator = 235

// DefaultParams returns the classic family for a table of size n: 256
// curves stepped by 4, 256 iterations, Ang1Inc = 4·2π/235 and Ang2Inc = 4
// radians. 2π is approximated by 710/113 to stay in integers.
func DefaultParams(n int) Params {
	p := Params{Curves: 256, Step: 4, Iterations: 256}
	p.Derive(n)
	return p
}

// Derive fills zero increments and feedback from the table size.
func (p *Params) Derive(n int) {
	if p.Ang1Inc == 0 {
		p.Ang1Inc = Angle((2*p.Step*n + aspectDenominator) / (2 * aspectDenominator))
	}
	if p.Ang2Inc == 0 {
		p.Ang2Inc = Angle((int64(p.Step)*int64(n)*113*2 + 710) / (2 * 710))
	}
	if p.Feedback == 0 {
		p.Feedback = int32((int64(n)*113*2 + 710) / (2 * 710))
	}
}

// Families returns the number of curves actually generated.
func (p Params) Families() int {
	return (p.Curves + p.Step - 1) / p.Step
}

// Samples returns the number of points generated per frame.
func (p Params) Samples() int {
	return p.Families() * p.Iterations
}

// Generator produces the per-frame sample stream.
type Generator struct {
	trig   *fixed.Table
	params Params
	mask   int32
}

// New panics on a shape that cannot produce samples; such a shape is a
// configuration fault caught by config validation first.
func New(trig *fixed.Table, p Params) *Generator {
	if p.Curves <= 0 || p.Step <= 0 || p.Iterations <= 0 {
		panic(fmt.Sprintf("curve: invalid shape curves=%d step=%d iterations=%d", p.Curves, p.Step, p.Iterations))
	}
	return &Generator{trig: trig, params: p, mask: trig.Mask()}
}

func (g *Generator) Params() Params { return g.params }

// Len returns the number of samples one call produces.
func (g *Generator) Len() int { return g.params.Samples() }

// Each streams samples in generation order: curves outer, iterations inner.
// k is the linear sample index, matching the colour table layout.
func (g *Generator) Each(t Angle, fn func(k int, p Point)) {
	p := g.params
	mask := g.mask
	fb := p.Feedback

	ang1 := t & mask
	ang2 := t & mask
	k := 0
	for i := 0; i < p.Curves; i += p.Step {
		var x, y int32
		for j := 0; j < p.Iterations; j++ {
			a := (ang1 + (x*fb)>>fixed.Shift) & mask
			b := (ang2 + (y*fb)>>fixed.Shift) & mask
			s1, c1 := g.trig.SinCos(a)
			s2, c2 := g.trig.SinCos(b)
			x = s1 + s2
			y = c1 + c2
			fn(k, Point{X: x, Y: y})
			k++
		}
		ang1 = (ang1 + p.Ang1Inc) & mask
		ang2 = (ang2 + p.Ang2Inc) & mask
	}
}

// Generate appends one frame of samples to dst[:0] and returns it.
func (g *Generator) Generate(t Angle, dst []Point) []Point {
	dst = dst[:0]
	if cap(dst) < g.Len() {
		dst = make([]Point, 0, g.Len())
	}
	g.Each(t, func(_ int, p Point) {
		dst = append(dst, p)
	})
	return dst
}
