// Package palette precomputes the per-sample colour gradient.
//
// Colours are 16-bit RGB555 with bit 15 as the display control bit. The
// table is laid out in the same nested order the curve generator visits
// curves and samples, so the renderer walks it sequentially.
package palette

import (
	"fmt"
	"image/color"
)

const (
	// Lit is the control bit a pixel needs to be shown.
	Lit uint16 = 1 << 15

	// litRed is the top bit of the red channel, set on every table entry.
	litRed = 16

	// maxIntensity bounds red+green+2*blue.
	maxIntensity = 62
)

// Table holds one colour per (curve, sample) pair in generation order.
type Table []uint16

// Build computes the gradient for curves x iterations samples. Red rises
// with the curve ordinal, green with the sample index and blue takes what
// remains of the intensity budget.
func Build(curves, iterations int) Table {
	if curves <= 0 || iterations <= 0 {
		panic(fmt.Sprintf("palette: invalid shape %dx%d", curves, iterations))
	}
	t := make(Table, curves*iterations)
	for c := 0; c < curves; c++ {
		r := litRed + c*16/curves
		for j := 0; j < iterations; j++ {
			g := j * 32 / iterations
			b := (maxIntensity - r - g) / 2
			t[c*iterations+j] = RGB555(uint8(r), uint8(g), uint8(b))
		}
	}
	return t
}

// Mono returns a table where every sample of a curve shares one colour.
func Mono(curves, iterations int, c uint16) Table {
	t := make(Table, curves*iterations)
	for i := range t {
		t[i] = c | Lit
	}
	return t
}

// At returns the colour of sample j on curve ordinal c.
func (t Table) At(c, j, iterations int) uint16 {
	return t[c*iterations+j]
}

// RGB555 packs 5-bit channels with the control bit set.
func RGB555(r, g, b uint8) uint16 {
	return Lit | uint16(b&0x1F)<<10 | uint16(g&0x1F)<<5 | uint16(r&0x1F)
}

// Channels unpacks the 5-bit channels.
func Channels(c uint16) (r, g, b uint8) {
	return uint8(c & 0x1F), uint8(c >> 5 & 0x1F), uint8(c >> 10 & 0x1F)
}

func expand(v uint8) uint8 { return v<<3 | v>>2 }

// RGBA converts a pixel to 8-bit colour. Pixels without the control bit are
// black.
func RGBA(c uint16) color.RGBA {
	if c&Lit == 0 {
		return color.RGBA{A: 0xFF}
	}
	r, g, b := Channels(c)
	return color.RGBA{R: expand(r), G: expand(g), B: expand(b), A: 0xFF}
}

// Hex formats a pixel as #rrggbb for terminal styles.
func Hex(c uint16) string {
	rgba := RGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Luma approximates brightness on a 0..31 scale.
func Luma(c uint16) int {
	if c&Lit == 0 {
		return 0
	}
	r, g, b := Channels(c)
	return (int(r)*2 + int(g)*5 + int(b)) / 8
}
