package analysis

import (
	"math"

	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/fixed"
)

// maxRadius is the corner of the [-2, 2] unit square samples live in.
var maxRadius = fixed.Sqrt(2 * (2 * fixed.Unit) * (2 * fixed.Unit))

// Shape summarises where the samples of one frame fall.
type Shape struct {
	MinX, MinY int32
	MaxX, MaxY int32
	MaxRadius  int32
	MeanRadius float64
	// Radial counts samples per ring; rings split [0, maxRadius] evenly.
	Radial []int
}

// Measure reports the bounding box and radial histogram of points.
func Measure(points []curve.Point, bins int) Shape {
	if bins < 1 {
		bins = 1
	}
	s := Shape{
		MinX: math.MaxInt32, MinY: math.MaxInt32,
		MaxX: math.MinInt32, MaxY: math.MinInt32,
		Radial: make([]int, bins),
	}
	if len(points) == 0 {
		return Shape{Radial: s.Radial}
	}

	var sum int64
	for _, p := range points {
		s.MinX = min(s.MinX, p.X)
		s.MinY = min(s.MinY, p.Y)
		s.MaxX = max(s.MaxX, p.X)
		s.MaxY = max(s.MaxY, p.Y)

		r := fixed.Sqrt(int64(p.X)*int64(p.X) + int64(p.Y)*int64(p.Y))
		sum += r
		s.MaxRadius = max(s.MaxRadius, int32(r))
		idx := int(r * int64(bins) / (maxRadius + 1))
		s.Radial[min(idx, bins-1)]++
	}
	s.MeanRadius = float64(sum) / float64(len(points))
	return s
}
