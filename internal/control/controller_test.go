package control

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/harmograph/internal/render"
)

var defaults = render.Defaults{Speed: 3, Scale: 48}

func press(k Keys) Input { return Input{Held: k, Pressed: k} }
func hold(k Keys) Input  { return Input{Held: k} }

var _ = Describe("Controller", func() {
	var (
		ctl *Controller
		p   render.Params
	)

	BeforeEach(func() {
		ctl = New(defaults, Repeater{Delay: 3, Interval: 2})
		p = render.NewParams(defaults)
	})

	Describe("pause", func() {
		It("restores the exact prior speed after two toggles", func() {
			p.Speed = -7
			ch := ctl.Apply(press(Pause), &p)
			Expect(ch.Pause).To(BeTrue())
			Expect(p.Paused()).To(BeTrue())
			Expect(p.OldSpeed).To(Equal(int32(-7)))

			ctl.Apply(Input{}, &p)
			ctl.Apply(press(Pause), &p)
			Expect(p.Speed).To(Equal(int32(-7)))
		})

		It("only reacts to the press edge", func() {
			ctl.Apply(press(Pause), &p)
			for i := 0; i < 5; i++ {
				ctl.Apply(hold(Pause), &p)
			}
			Expect(p.Paused()).To(BeTrue())
		})

		It("lets speed change while paused", func() {
			ctl.Apply(press(Pause), &p)
			ctl.Apply(press(SpeedUp), &p)
			Expect(p.Speed).To(Equal(int32(1)))
		})
	})

	Describe("trails", func() {
		It("flips the flag and reports the change", func() {
			ch := ctl.Apply(press(Trails), &p)
			Expect(ch.Trails).To(BeTrue())
			Expect(p.Trails).To(BeTrue())

			ch = ctl.Apply(hold(Trails), &p)
			Expect(ch.Trails).To(BeFalse())

			ctl.Apply(Input{}, &p)
			ctl.Apply(press(Trails), &p)
			Expect(p.Trails).To(BeFalse())
		})
	})

	Describe("pan", func() {
		It("moves every frame while held", func() {
			for i := 0; i < 5; i++ {
				ctl.Apply(hold(PanRight|PanUp), &p)
			}
			Expect(p.PanX).To(Equal(int32(5)))
			Expect(p.PanY).To(Equal(int32(-5)))
		})

		It("moves faster with the modifier", func() {
			ctl.Apply(hold(PanLeft|Fast), &p)
			Expect(p.PanX).To(Equal(-panFast))
		})
	})

	Describe("zoom", func() {
		It("steps once, then repeats after the delay", func() {
			var scales []int32
			for i := 0; i < 8; i++ {
				ctl.Apply(hold(ZoomIn), &p)
				scales = append(scales, p.Scale)
			}
			// frame 1 fires, frames 2-3 wait, then every second frame
			Expect(scales).To(Equal([]int32{49, 49, 49, 50, 50, 51, 51, 52}))
		})

		It("clamps to the configured range", func() {
			ctl.MaxScale = 50
			p.Scale = 50
			ctl.Apply(press(ZoomIn|Fast), &p)
			Expect(p.Scale).To(Equal(int32(50)))

			p.Scale = 2
			ctl.Apply(Input{}, &p)
			ctl.Apply(press(ZoomOut|Fast), &p)
			Expect(p.Scale).To(Equal(int32(1)))
		})
	})

	Describe("reset", func() {
		BeforeEach(func() {
			p.Scale = 300
			p.PanX, p.PanY = 40, -12
		})

		It("restores scale and pan from the reset key", func() {
			ch := ctl.Apply(press(Reset), &p)
			Expect(ch.Reset).To(BeTrue())
			Expect(p.Scale).To(Equal(defaults.Scale))
			Expect(p.PanX).To(BeZero())
			Expect(p.PanY).To(BeZero())
		})

		It("fires when both zoom keys are held", func() {
			ctl.Apply(hold(ZoomIn|ZoomOut), &p)
			Expect(p.Scale).To(Equal(defaults.Scale))
		})

		It("leaves speed and trails alone", func() {
			p.Speed, p.Trails = 9, true
			ctl.Apply(press(Reset), &p)
			Expect(p.Speed).To(Equal(int32(9)))
			Expect(p.Trails).To(BeTrue())
		})

		It("suppresses the scale change on the following frame", func() {
			ctl.Apply(press(Reset), &p)
			ch := ctl.Apply(press(ZoomIn), &p)
			Expect(ch.Scale).To(BeFalse())
			Expect(p.Scale).To(Equal(defaults.Scale))

			ctl.Apply(Input{}, &p)
			ctl.Apply(press(ZoomIn), &p)
			Expect(p.Scale).To(Equal(defaults.Scale + 1))
		})

		It("does not zoom when one key of the combo is released late", func() {
			ctl.Apply(hold(ZoomIn|ZoomOut), &p)
			ctl.Apply(hold(ZoomIn), &p)
			ctl.Apply(hold(ZoomIn), &p)
			Expect(p.Scale).To(Equal(defaults.Scale))
		})
	})

	Describe("speed", func() {
		It("clamps to the symmetric limit", func() {
			ctl.MaxSpeed = 4
			for i := 0; i < 3; i++ {
				ctl.Apply(Input{}, &p)
				ctl.Apply(press(SpeedUp|Fast), &p)
			}
			Expect(p.Speed).To(Equal(int32(4)))
			for i := 0; i < 3; i++ {
				ctl.Apply(Input{}, &p)
				ctl.Apply(press(SpeedDown|Fast), &p)
			}
			Expect(p.Speed).To(Equal(int32(-4)))
		})

		It("cancels when both directions are held", func() {
			ch := ctl.Apply(press(SpeedUp|SpeedDown), &p)
			Expect(ch.Speed).To(BeFalse())
			Expect(p.Speed).To(Equal(defaults.Speed))
		})
	})
})

var _ = Describe("Keys", func() {
	It("parses script names", func() {
		k, err := ParseKeys([]string{"zoom_in", " Fast "})
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(ZoomIn | Fast))
		Expect(k.String()).To(Equal("zoom_in|fast"))
	})

	It("rejects unknown names", func() {
		_, err := ParseKeys([]string{"jump"})
		var uk *UnknownKeyError
		Expect(err).To(BeAssignableToTypeOf(uk))
	})

	It("derives press edges from held sets", func() {
		in := Edge(PanLeft, PanLeft|Pause)
		Expect(in.Pressed).To(Equal(Pause))
		Expect(in.Held.Has(PanLeft | Pause)).To(BeTrue())
	})
})
