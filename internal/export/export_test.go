package export

import (
	"bytes"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/fixed"
	"github.com/san-kum/harmograph/internal/palette"
)

func testFrame() *buffer.Buffer {
	b := buffer.New(8, 6)
	b.Set(1, 2, palette.RGB555(31, 0, 0))
	b.Set(7, 5, palette.RGB555(0, 31, 0))
	return b
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"frame.png", PNG, false},
		{"out/FRAME.BMP", BMP, false},
		{"anim.gif", GIF, false},
		{"curves.svg", SVG, false},
		{"frame.jpg", "", true},
		{"frame", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.err {
			if !errors.Is(err, ErrFormat) {
				t.Errorf("%s: expected ErrFormat, got %v", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: got %q, %v", tt.path, got, err)
		}
	}
}

func TestScaledKeepsPixelsSharp(t *testing.T) {
	img := Scaled(testFrame(), 3)
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 18 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			if c := img.RGBAAt(3+dx, 6+dy); c.R != 0xFF || c.G != 0 {
				t.Fatalf("pixel (%d,%d) = %v", 3+dx, 6+dy, c)
			}
		}
	}
	if c := img.RGBAAt(0, 0); c.R != 0 || c.A != 0xFF {
		t.Errorf("background should be opaque black, got %v", c)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, testFrame(), 1); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, _, _ := img.At(7, 5).RGBA()
	if r != 0 || g>>8 != 0xFF {
		t.Errorf("unexpected colour at (7,5): r=%d g=%d", r, g)
	}
}

func TestBMPDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeBMP(&buf, testFrame(), 2); err != nil {
		t.Fatal(err)
	}
	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("expected width 16, got %d", img.Bounds().Dx())
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(2, 0)
	for i := 0; i < 3; i++ {
		rec.Add(testFrame())
	}
	if rec.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", rec.Len())
	}
	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 || g.Delay[0] != 2 {
		t.Errorf("unexpected gif: %d frames, delay %v", len(g.Image), g.Delay)
	}
	rec.Reset()
	if rec.Len() != 0 {
		t.Error("reset should drop frames")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.bmp", "c.gif"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, testFrame(), 1); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s not written", name)
		}
	}
	if err := WriteFile(filepath.Join(dir, "d.svg"), testFrame(), 1); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for svg frame, got %v", err)
	}
}

func TestSamplesToSVG(t *testing.T) {
	points := []curve.Point{
		{X: 0, Y: 2 * fixed.Unit}, {X: fixed.Unit, Y: 0}, {X: -2 * fixed.Unit, Y: -2 * fixed.Unit},
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2},
	}
	colours := palette.Build(2, 3)
	svg := SamplesToSVG(points, 3, colours, 100)

	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(svg, "M50.0,100.0 L75.0,50.0 L0.0,0.0") {
		t.Errorf("unexpected first path:\n%s", svg)
	}
	if !strings.Contains(svg, palette.Hex(colours[5])) {
		t.Error("second path should use its family colour")
	}
	if SamplesToSVG(nil, 3, nil, 100) != "" {
		t.Error("empty input should give empty output")
	}
}
