// Package clip precomputes the circular viewport mask used to clear and
// bound painting.
package clip

import (
	"fmt"

	"github.com/san-kum/harmograph/internal/fixed"
)

// Table stores, per scanline, the half-chord of the mask circle. A zero
// entry means the scanline lies outside the circle.
type Table struct {
	half   []int
	width  int
	height int
	radius int
}

// Build computes the mask for a width x height screen. The circle is centred
// between pixel rows so the table is exactly symmetric. radius <= 0 disables
// the mask: every scanline spans the full width.
func Build(width, height, radius int) *Table {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("clip: invalid screen %dx%d", width, height))
	}
	t := &Table{
		half:   make([]int, height),
		width:  width,
		height: height,
		radius: radius,
	}
	maxHalf := width / 2
	if radius <= 0 {
		for y := range t.half {
			t.half[y] = maxHalf
		}
		return t
	}

	// Distances in half-pixel units: row y sits at 2y+1-height from centre.
	r2 := int64(4 * radius * radius)
	for y := 0; y < height; y++ {
		d := int64(2*y + 1 - height)
		if d*d > r2 {
			continue
		}
		h := int(fixed.Sqrt(r2-d*d) / 2)
		if h > maxHalf {
			h = maxHalf
		}
		t.half[y] = h
	}
	return t
}

func (t *Table) Height() int { return t.height }
func (t *Table) Radius() int { return t.radius }

// Half returns the half-chord for scanline y, 0 outside the screen.
func (t *Table) Half(y int) int {
	if y < 0 || y >= t.height {
		return 0
	}
	return t.half[y]
}

// Width returns the full span width of scanline y.
func (t *Table) Width(y int) int { return 2 * t.Half(y) }

// Span returns the half-open pixel range [x0, x1) covered on scanline y.
func (t *Table) Span(y int) (x0, x1 int) {
	h := t.Half(y)
	cx := t.width / 2
	return cx - h, cx + h
}

// Contains reports whether pixel (x, y) lies inside the mask.
func (t *Table) Contains(x, y int) bool {
	x0, x1 := t.Span(y)
	return x >= x0 && x < x1
}

// Area returns the number of pixels inside the mask.
func (t *Table) Area() int {
	n := 0
	for _, h := range t.half {
		n += 2 * h
	}
	return n
}
