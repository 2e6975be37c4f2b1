// Package buffer owns the two pixel buffers and the active/inactive
// selection.
//
// # Thread Safety
//
// Nothing here locks. The frame loop paints Back() and flips from the same
// goroutine that presents Front(), so the displayed buffer is never written
// while it is read.
package buffer

import (
	"image"

	"github.com/san-kum/harmograph/internal/palette"
)

// Buffer is a fixed-size array of RGB555 pixels in row-major order.
type Buffer struct {
	Width, Height int
	Pix           []uint16
}

func New(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, Pix: make([]uint16, w*h)}
}

// Set writes a pixel; callers bounds-check first.
func (b *Buffer) Set(x, y int, c uint16) {
	b.Pix[y*b.Width+x] = c
}

func (b *Buffer) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

func (b *Buffer) Clear() {
	clear(b.Pix)
}

// Spanner reports the pixel range [x0, x1) to clear on a scanline.
type Spanner interface {
	Span(y int) (x0, x1 int)
}

// ClearSpans zeroes only the pixels inside the mask and returns how many
// were touched.
func (b *Buffer) ClearSpans(mask Spanner) int {
	n := 0
	for y := 0; y < b.Height; y++ {
		x0, x1 := mask.Span(y)
		if x0 < 0 {
			x0 = 0
		}
		if x1 > b.Width {
			x1 = b.Width
		}
		if x1 <= x0 {
			continue
		}
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		clear(row[x0:x1])
		n += x1 - x0
	}
	return n
}

// Lit counts pixels with the control bit set.
func (b *Buffer) Lit() int {
	n := 0
	for _, p := range b.Pix {
		if p&palette.Lit != 0 {
			n++
		}
	}
	return n
}

func (b *Buffer) Clone() *Buffer {
	c := New(b.Width, b.Height)
	copy(c.Pix, b.Pix)
	return c
}

// RGBA converts the buffer for encoders and window back ends.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	b.WriteRGBA(img.Pix)
	return img
}

// WriteRGBA fills dst (4 bytes per pixel) without allocating.
func (b *Buffer) WriteRGBA(dst []byte) {
	for i, p := range b.Pix {
		c := palette.RGBA(p)
		o := i * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
}
