package engine

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/config"
	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/curve"
	"github.com/san-kum/harmograph/internal/render"
)

func press(k control.Keys) control.Input { return control.Input{Held: k, Pressed: k} }

func litSet(b *buffer.Buffer) map[int]uint16 {
	m := make(map[int]uint16)
	for i, px := range b.Pix {
		if px != 0 {
			m[i] = px
		}
	}
	return m
}

func TestPausedFramesAreIdentical(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	e := New(DefaultOptions())

	for i := 0; i < 5; i++ {
		_, err := e.Step(ctx, control.Input{})
		g.Expect(err).NotTo(HaveOccurred())
	}
	_, err := e.Step(ctx, press(control.Pause))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(e.Params().Paused()).To(BeTrue())

	wantT := e.Time()
	wantSamples := e.Samples(nil)
	var wantFront []uint16

	for i := 0; i < 10; i++ {
		fs, err := e.Step(ctx, control.Input{})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(fs.Time).To(Equal(wantT))
		g.Expect(e.Samples(nil)).To(Equal(wantSamples))

		front := append([]uint16(nil), e.Front().Pix...)
		if wantFront == nil {
			wantFront = front
			continue
		}
		g.Expect(front).To(Equal(wantFront), "frame %d", i)
	}
}

func TestTimeAdvancesBySpeedAfterFlip(t *testing.T) {
	g := NewWithT(t)
	e := New(DefaultOptions())

	fs, err := e.Step(context.Background(), control.Input{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fs.Time).To(Equal(curve.Angle(0)))
	g.Expect(fs.Frame).To(Equal(uint64(1)))
	g.Expect(e.Time()).To(Equal(curve.Angle(DefaultSpeed)))

	e.SetTime(-1)
	g.Expect(e.Time()).To(Equal(curve.Angle(1<<DefaultTableBits - 1)))
}

func TestTrailsMidRun(t *testing.T) {
	g := NewWithT(t)
	ctx := context.Background()
	e := New(DefaultOptions())

	g.Expect(e.Run(ctx, nil, 5)).To(Succeed())
	before := litSet(e.Front())
	g.Expect(before).NotTo(BeEmpty())

	fs, err := e.Step(ctx, press(control.Trails))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fs.Changes.Trails).To(BeTrue())
	g.Expect(fs.Render.Cleared).To(BeZero())
	g.Expect(e.Mode()).To(Equal(buffer.ModeAccumulate))

	for i := 0; i < 4; i++ {
		front := e.Front()
		for idx := range before {
			g.Expect(front.Pix[idx]).NotTo(BeZero(), "pixel %d lost with trails on", idx)
		}
		fs, err = e.Step(ctx, control.Input{})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(fs.Render.Cleared).To(BeZero())
	}
	accumulated := len(litSet(e.Front()))
	g.Expect(accumulated).To(BeNumerically(">", len(before)))

	// Disabling trails returns to a clean double-buffered frame.
	tOff := e.Time()
	fs, err = e.Step(ctx, press(control.Trails))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fs.Render.Cleared).To(BeNumerically(">", 0))
	g.Expect(e.Mode()).To(Equal(buffer.ModeDouble))

	fresh := buffer.New(DefaultWidth, DefaultHeight)
	p := e.Params()
	e.Renderer().Render(fresh, tOff, &p)
	g.Expect(e.Front().Pix).To(Equal(fresh.Pix))
}

func TestStartInTrailsMode(t *testing.T) {
	g := NewWithT(t)
	opts := DefaultOptions()
	opts.Trails = true
	e := New(opts)
	g.Expect(e.Mode()).To(Equal(buffer.ModeAccumulate))
	g.Expect(e.Params().Trails).To(BeTrue())
}

func TestReportEveryWindow(t *testing.T) {
	g := NewWithT(t)
	var reports []Report
	opts := DefaultOptions()
	opts.ReportEvery = 10
	opts.OnReport = func(r Report) { reports = append(reports, r) }
	e := New(opts)

	g.Expect(e.Run(context.Background(), Idle, 25)).To(Succeed())
	g.Expect(reports).To(HaveLen(2))
	g.Expect(reports[1].Frames).To(Equal(uint64(20)))
	g.Expect(reports[1].Speed).To(Equal(int32(DefaultSpeed)))
	g.Expect(e.Report()).To(Equal(reports[1]))
	g.Expect(reports[1].String()).To(ContainSubstring("speed 3"))
}

func TestRunHonoursCancel(t *testing.T) {
	g := NewWithT(t)
	ctx, cancel := context.WithCancel(context.Background())
	e := New(DefaultOptions())

	src := SourceFunc(func(frame uint64) control.Input {
		if frame == 3 {
			cancel()
		}
		return control.Input{}
	})
	err := e.Run(ctx, src, 0)
	g.Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	g.Expect(e.Frames()).To(Equal(uint64(3)))
}

func TestOptionsFillDefaults(t *testing.T) {
	g := NewWithT(t)
	e := New(Options{TableBits: 10, Colour: render.ColourMono})
	w, h := e.Size()
	g.Expect(w).To(Equal(DefaultWidth))
	g.Expect(h).To(Equal(DefaultHeight))
	g.Expect(e.Generator().Params().Curves).To(Equal(256))
	g.Expect(e.Renderer().ColourMode()).To(Equal(render.ColourMono))
	g.Expect(e.Params().Scale).To(Equal(int32(DefaultScale)))
}

func BenchmarkStep(b *testing.B) {
	e := New(DefaultOptions())
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step(ctx, control.Input{})
	}
}

func TestFromConfig(t *testing.T) {
	g := NewWithT(t)

	cfg := config.GetPreset("zoomed")
	e, err := FromConfig(cfg, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(e.Params().Scale).To(Equal(int32(96)))
	g.Expect(e.Renderer().Mask().Radius()).To(BeZero())

	cfg.TableBits = 40
	_, err = FromConfig(cfg, nil)
	g.Expect(errors.Is(err, config.ErrTableSize)).To(BeTrue())
}
