package curve

import (
	"testing"

	"github.com/san-kum/harmograph/internal/fixed"
)

func newGenerator(t testing.TB) *Generator {
	t.Helper()
	trig := fixed.Build(fixed.QuarterWave(1 << 14))
	return New(trig, DefaultParams(trig.Size()))
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams(1 << 14)
	if p.Ang1Inc != 279 {
		t.Errorf("expected Ang1Inc 279, got %d", p.Ang1Inc)
	}
	if p.Ang2Inc != 10430 {
		t.Errorf("expected Ang2Inc 10430, got %d", p.Ang2Inc)
	}
	if p.Feedback != 2608 {
		t.Errorf("expected Feedback 2608, got %d", p.Feedback)
	}
	if p.Families() != 64 || p.Samples() != 64*256 {
		t.Errorf("unexpected shape: %d families, %d samples", p.Families(), p.Samples())
	}
}

func TestDeriveKeepsExplicitValues(t *testing.T) {
	p := Params{Curves: 8, Step: 2, Iterations: 4, Ang1Inc: 7, Feedback: 1}
	p.Derive(1 << 10)
	if p.Ang1Inc != 7 || p.Feedback != 1 {
		t.Errorf("explicit values overwritten: %+v", p)
	}
	if p.Ang2Inc == 0 {
		t.Error("Ang2Inc should be derived")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := newGenerator(t)
	for _, ts := range []Angle{0, 1, 777, 16383, -5} {
		a := g.Generate(ts, nil)
		b := g.Generate(ts, make([]Point, 3))
		if len(a) != g.Len() || len(b) != g.Len() {
			t.Fatalf("expected %d samples, got %d and %d", g.Len(), len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("t=%d sample %d differs: %v vs %v", ts, i, a[i], b[i])
			}
		}
	}
}

func TestFirstSampleClosedForm(t *testing.T) {
	g := newGenerator(t)
	trig := g.trig
	pts := g.Generate(0, nil)
	want := Point{X: trig.Sin(0) + trig.Sin(0), Y: trig.Cos(0) + trig.Cos(0)}
	if pts[0] != want {
		t.Errorf("first sample %v, want %v", pts[0], want)
	}
	if want != (Point{X: 0, Y: 2 * fixed.Unit}) {
		t.Errorf("closed form should be (0, 2*unit), got %v", want)
	}
}

func TestSecondSampleFollowsRecurrence(t *testing.T) {
	g := newGenerator(t)
	trig := g.trig
	p := g.Params()
	pts := g.Generate(100, nil)

	x, y := pts[0].X, pts[0].Y
	a := 100 + (x*p.Feedback)>>fixed.Shift
	b := 100 + (y*p.Feedback)>>fixed.Shift
	want := Point{X: trig.Sin(a) + trig.Sin(b), Y: trig.Cos(a) + trig.Cos(b)}
	if pts[1] != want {
		t.Errorf("second sample %v, want %v", pts[1], want)
	}

	// second curve starts from the advanced accumulators
	a2 := 100 + p.Ang1Inc
	b2 := 100 + p.Ang2Inc
	first := Point{X: trig.Sin(a2) + trig.Sin(b2), Y: trig.Cos(a2) + trig.Cos(b2)}
	if pts[p.Iterations] != first {
		t.Errorf("second curve first sample %v, want %v", pts[p.Iterations], first)
	}
}

func TestSamplesBounded(t *testing.T) {
	g := newGenerator(t)
	for _, ts := range []Angle{0, 4000, 12345} {
		g.Each(ts, func(k int, p Point) {
			if p.X > 2*fixed.Unit || p.X < -2*fixed.Unit || p.Y > 2*fixed.Unit || p.Y < -2*fixed.Unit {
				t.Fatalf("sample %d out of range: %v", k, p)
			}
		})
	}
}

func TestEachIndexesInOrder(t *testing.T) {
	g := newGenerator(t)
	next := 0
	g.Each(42, func(k int, _ Point) {
		if k != next {
			t.Fatalf("expected index %d, got %d", next, k)
		}
		next++
	})
	if next != g.Len() {
		t.Errorf("visited %d samples, expected %d", next, g.Len())
	}
}

func TestTimeWrapsWithTable(t *testing.T) {
	g := newGenerator(t)
	a := g.Generate(5, nil)
	b := g.Generate(5+1<<14, nil)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs after a full turn", i)
		}
	}
}

func TestNewPanicsOnBadShape(t *testing.T) {
	trig := fixed.Build(fixed.QuarterWave(64))
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero step")
		}
	}()
	New(trig, Params{Curves: 4, Step: 0, Iterations: 4})
}

func BenchmarkGenerate(b *testing.B) {
	g := newGenerator(b)
	buf := make([]Point, 0, g.Len())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.Generate(Angle(i), buf)
	}
}
