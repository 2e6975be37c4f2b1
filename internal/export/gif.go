package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"golang.org/x/image/draw"

	"github.com/san-kum/harmograph/internal/buffer"
)

// Recorder collects frames for an animated GIF.
type Recorder struct {
	factor int
	delay  int
	pal    color.Palette
	frames []*image.Paletted
	delays []int
}

// NewRecorder records frames scaled by factor with delay in hundredths of a
// second between frames (0 means 2, roughly 50 fps).
func NewRecorder(factor, delay int) *Recorder {
	if factor < 1 {
		factor = 1
	}
	if delay <= 0 {
		delay = 2
	}
	return &Recorder{factor: factor, delay: delay, pal: Palette()}
}

// Palette is black plus a 6x7x6 colour cube, enough for the gradient the
// renderer produces.
func Palette() color.Palette {
	p := color.Palette{color.RGBA{A: 0xFF}}
	for r := 0; r < 6; r++ {
		for g := 0; g < 7; g++ {
			for b := 0; b < 6; b++ {
				p = append(p, color.RGBA{
					R: uint8(r * 255 / 5),
					G: uint8(g * 255 / 6),
					B: uint8(b * 255 / 5),
					A: 0xFF,
				})
			}
		}
	}
	return p
}

func (r *Recorder) Add(b *buffer.Buffer) {
	src := b.RGBA()
	dst := image.NewPaletted(image.Rect(0, 0, b.Width*r.factor, b.Height*r.factor), r.pal)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	r.frames = append(r.frames, dst)
	r.delays = append(r.delays, r.delay)
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() {
	r.frames = r.frames[:0]
	r.delays = r.delays[:0]
}

func (r *Recorder) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &gif.GIF{Image: r.frames, Delay: r.delays})
}
