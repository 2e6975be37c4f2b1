package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/palette"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of braille cells. Each cell also keeps the brightest
// pixel colour that landed in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colour        [][]uint16

	styles map[uint16]lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colour: make([][]uint16, h),
		styles: make(map[uint16]lipgloss.Style),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colour[i] = make([]uint16, w)
	}
	c.Clear()
	return c
}

// DotSize is the canvas size in dots.
func (c *Canvas) DotSize() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates with colour px.
func (c *Canvas) Set(x, y int, px uint16) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if palette.Luma(px) >= palette.Luma(c.Colour[row][col]) {
		c.Colour[row][col] = px
	}
}

func (c *Canvas) Lit(x, y int) bool {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colour[i][j] = 0
		}
	}
}

// FromBuffer downsamples a frame onto the canvas, mapping the whole buffer
// onto the whole dot grid.
func (c *Canvas) FromBuffer(b *buffer.Buffer) {
	c.Clear()
	dw, dh := c.DotSize()
	if b.Width == 0 || b.Height == 0 {
		return
	}
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		dy := y * dh / b.Height
		for x, px := range row {
			if px&palette.Lit == 0 {
				continue
			}
			c.Set(x*dw/b.Width, dy, px)
		}
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Styled renders each non-empty cell in its pixel colour. mono, if set,
// replaces every colour.
func (c *Canvas) Styled(mono lipgloss.Color) string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == brailleBlank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(c.style(c.Colour[i][j], mono).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) style(px uint16, mono lipgloss.Color) lipgloss.Style {
	if mono != "" {
		return lipgloss.NewStyle().Foreground(mono)
	}
	s, ok := c.styles[px]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(px)))
		c.styles[px] = s
	}
	return s
}
