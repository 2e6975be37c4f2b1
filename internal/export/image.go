package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/san-kum/harmograph/internal/buffer"
)

// ErrFormat is returned for an unsupported file extension.
var ErrFormat = errors.New("export: unsupported format")

// Format is an image encoding chosen by file extension.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
	GIF Format = "gif"
	SVG Format = "svg"
)

// FormatFor returns the format implied by path's extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case PNG, BMP, GIF, SVG:
		return Format(ext), nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Scaled converts a frame to RGBA, enlarged by an integer factor with
// nearest-neighbour sampling so pixels stay sharp.
func Scaled(b *buffer.Buffer, factor int) *image.RGBA {
	src := b.RGBA()
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Width*factor, b.Height*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func EncodePNG(w io.Writer, b *buffer.Buffer, factor int) error {
	return png.Encode(w, Scaled(b, factor))
}

func EncodeBMP(w io.Writer, b *buffer.Buffer, factor int) error {
	return bmp.Encode(w, Scaled(b, factor))
}

// WriteFile writes a single frame, picking the encoder from the extension.
// SVG is not a raster format and is rejected here; see WriteSVG.
func WriteFile(path string, b *buffer.Buffer, factor int) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case PNG:
		err = EncodePNG(f, b, factor)
	case BMP:
		err = EncodeBMP(f, b, factor)
	case GIF:
		rec := NewRecorder(factor, 0)
		rec.Add(b)
		err = rec.Encode(f)
	default:
		err = fmt.Errorf("%w: %s is not a raster format", ErrFormat, format)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}
