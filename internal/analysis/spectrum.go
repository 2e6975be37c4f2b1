package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/fixed"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Signal returns the coordinates of one family along axis, in units. It
// returns nil when the family is out of range.
func Signal(points []curve.Point, iterations, family int, axis Axis) []float64 {
	start := family * iterations
	if iterations <= 0 || family < 0 || start+iterations > len(points) {
		return nil
	}
	out := make([]float64, iterations)
	for j, p := range points[start : start+iterations] {
		v := p.X
		if axis == AxisY {
			v = p.Y
		}
		out[j] = float64(v) / fixed.Unit
	}
	return out
}

// Spectrum returns the magnitudes of the first half of the DFT of x after a
// Hann window.
func Spectrum(x []float64) []float64 {
	n := len(x)
	if n < 2 {
		return nil
	}
	buf := make([]complex128, n)
	for i, v := range x {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex(v*w, 0)
	}
	s := fft.FFT(buf)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(s[i])
	}
	return ps
}

// Dominant returns the strongest bin above DC, or 0 for an empty spectrum.
func Dominant(ps []float64) (bin int, mag float64) {
	for i := 1; i < len(ps); i++ {
		if ps[i] > mag {
			bin, mag = i, ps[i]
		}
	}
	return bin, mag
}

// Bands holds the share of spectral magnitude in each range.
type Bands struct {
	Low, Mid, High float64
}

// SplitBands sums ps above DC into the lowest eighth, the rest of the lower
// half and the upper half, as fractions of the total.
func SplitBands(ps []float64) Bands {
	var b Bands
	lowEnd, midEnd := len(ps)/8, len(ps)/2
	for i := 1; i < len(ps); i++ {
		switch {
		case i < lowEnd:
			b.Low += ps[i]
		case i < midEnd:
			b.Mid += ps[i]
		default:
			b.High += ps[i]
		}
	}
	total := b.Low + b.Mid + b.High
	if total == 0 {
		return Bands{}
	}
	return Bands{Low: b.Low / total, Mid: b.Mid / total, High: b.High / total}
}
