package palette

import (
	"testing"
)

func TestBuildIsPure(t *testing.T) {
	a := Build(64, 256)
	b := Build(64, 256)
	if len(a) != 64*256 {
		t.Fatalf("expected %d entries, got %d", 64*256, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs between builds: %#04x vs %#04x", i, a[i], b[i])
		}
	}
}

func TestChannelsBoundedAndLit(t *testing.T) {
	curves, iters := 64, 256
	tbl := Build(curves, iters)
	for c := 0; c < curves; c++ {
		for j := 0; j < iters; j++ {
			px := tbl.At(c, j, iters)
			if px&Lit == 0 {
				t.Fatalf("(%d,%d) missing control bit", c, j)
			}
			r, g, b := Channels(px)
			if r&litRed == 0 {
				t.Fatalf("(%d,%d) red %d missing lit bit", c, j, r)
			}
			if int(r)+int(g)+2*int(b) > maxIntensity {
				t.Fatalf("(%d,%d) intensity overflow r=%d g=%d b=%d", c, j, r, g, b)
			}
		}
	}
}

func TestRedRisesWithCurveGreenWithSample(t *testing.T) {
	curves, iters := 64, 256
	tbl := Build(curves, iters)
	prevR := uint8(0)
	for c := 0; c < curves; c++ {
		r, _, _ := Channels(tbl.At(c, 0, iters))
		if r < prevR {
			t.Fatalf("red decreased at curve %d: %d < %d", c, r, prevR)
		}
		prevR = r

		prevG := uint8(0)
		for j := 0; j < iters; j++ {
			_, g, _ := Channels(tbl.At(c, j, iters))
			if g < prevG {
				t.Fatalf("green decreased at (%d,%d)", c, j)
			}
			prevG = g
		}
	}
}

// Within one red band, two entries only share a colour when they also share
// a green step.
func TestDistinctWithinRedBand(t *testing.T) {
	curves, iters := 64, 256
	tbl := Build(curves, iters)
	type key struct{ r, g uint8 }
	seen := map[uint16]key{}
	for c := 0; c < curves; c++ {
		for j := 0; j < iters; j++ {
			px := tbl.At(c, j, iters)
			r, g, _ := Channels(px)
			if prev, ok := seen[px]; ok && prev != (key{r, g}) {
				t.Fatalf("colour %#04x reused across bands %v and %v", px, prev, key{r, g})
			}
			seen[px] = key{r, g}
		}
	}
	// 16 red bands x 32 green steps
	if len(seen) != 16*32 {
		t.Errorf("expected %d distinct colours, got %d", 16*32, len(seen))
	}
}

func TestRGB555RoundTrip(t *testing.T) {
	px := RGB555(31, 0, 17)
	r, g, b := Channels(px)
	if r != 31 || g != 0 || b != 17 {
		t.Errorf("channels = %d,%d,%d", r, g, b)
	}
	rgba := RGBA(px)
	if rgba.R != 0xFF || rgba.G != 0 || rgba.A != 0xFF {
		t.Errorf("unexpected RGBA %+v", rgba)
	}
	if Hex(px) != "#ff008c" {
		t.Errorf("unexpected hex %s", Hex(px))
	}
	if unlit := RGBA(0x7FFF); unlit.R != 0 || unlit.G != 0 || unlit.B != 0 {
		t.Errorf("pixel without control bit should be black, got %+v", unlit)
	}
}

func TestMono(t *testing.T) {
	tbl := Mono(4, 8, 0x7FFF)
	for i, px := range tbl {
		if px != 0xFFFF {
			t.Fatalf("entry %d = %#04x", i, px)
		}
	}
}
