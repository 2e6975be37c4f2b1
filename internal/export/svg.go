package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/fixed"
	"github.com/san-kum/harmograph/internal/palette"
)

// SamplesToSVG draws each curve family of one frame as a polyline. points
// must be in generation order, iterations samples per family; colours, if
// non-nil, is walked in the same order and each path takes the colour of
// its last sample.
func SamplesToSVG(points []curve.Point, iterations int, colours palette.Table, size int) string {
	if len(points) == 0 || iterations <= 0 {
		return ""
	}

	// Samples lie in [-2, 2] units; map that square onto the canvas.
	half := float64(size) / 2
	k := half / float64(2*fixed.Unit)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
<g fill="none" stroke-width="0.5">
`, size, size, size, size))

	for start := 0; start+iterations <= len(points); start += iterations {
		stroke := "#ffffff"
		if colours != nil && start+iterations <= len(colours) {
			stroke = palette.Hex(colours[start+iterations-1])
		}
		sb.WriteString(fmt.Sprintf(`<path stroke="%s" d="M`, stroke))
		for j, p := range points[start : start+iterations] {
			x := half + float64(p.X)*k
			y := half + float64(p.Y)*k
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func WriteSVG(w io.Writer, points []curve.Point, iterations int, colours palette.Table, size int) error {
	_, err := io.WriteString(w, SamplesToSVG(points, iterations, colours, size))
	return err
}
