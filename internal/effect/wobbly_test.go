package effect

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wobbly/internal/clock"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/host"
)

type nanStepper struct{}

func (nanStepper) Step(_ dynamo.System, x dynamo.State, _, _ float64) dynamo.State {
	out := make(dynamo.State, len(x))
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

var _ = Describe("Wobbly", func() {
	var (
		src    *clock.Manual
		loop   *clock.Loop
		actor  *host.Actor
		w      *Wobbly
		frames []Frame
	)

	frame := func() {
		src.Advance(clock.FrameInterval)
		loop.Dispatch()
	}

	settle := func() int {
		for i := 0; i < 5000; i++ {
			if !w.Ticking() {
				return i
			}
			frame()
		}
		Fail("effect never settled")
		return 0
	}

	BeforeEach(func() {
		src = clock.NewManual(1_000_000)
		loop = clock.NewLoop(src)
		actor = host.NewActor("window", dynamo.Vector{}, dynamo.Vector{X: 100, Y: 50})
		frames = nil

		var err error
		w, err = New(loop, src, WithObserver(ObserverFunc(func(f Frame) {
			frames = append(frames, f)
		})))
		Expect(err).NotTo(HaveOccurred())
		actor.AddEffect(w)
	})

	Describe("attach and detach", func() {
		It("sizes the model to the padded plain paint box", func() {
			Expect(w.Model()).NotTo(BeNil())
			Expect(w.Model().Size()).To(Equal(dynamo.Vector{X: 102, Y: 52}))
			Expect(w.Model().Origin()).To(Equal(dynamo.Vector{}))
			Expect(w.Enabled()).To(BeFalse())
			Expect(w.Ticking()).To(BeFalse())
			Expect(actor.Listeners()).To(Equal(1))
		})

		It("drops everything on detach", func() {
			w.Grab(10, 10)
			w.MoveBy(20, 0)
			Expect(loop.Pending()).To(Equal(1))

			actor.RemoveEffect(w)

			Expect(w.Model()).To(BeNil())
			Expect(w.Anchor()).To(BeNil())
			Expect(w.Ticking()).To(BeFalse())
			Expect(w.Enabled()).To(BeFalse())
			Expect(loop.Pending()).To(BeZero())
			Expect(actor.Listeners()).To(BeZero())
		})

		It("replaces the model when moved to another actor", func() {
			old := w.Model()
			other := host.NewActor("other", dynamo.Vector{}, dynamo.Vector{X: 40, Y: 40})
			other.AddEffect(w)

			Expect(w.Model()).NotTo(BeIdenticalTo(old))
			Expect(w.Model().Size()).To(Equal(dynamo.Vector{X: 42, Y: 42}))
		})

		It("falls back to the raw size when the actor was never painted", func() {
			unpainted := host.NewActor("fresh", dynamo.Vector{}, dynamo.Vector{X: 64, Y: 48})
			unpainted.SetPainted(false)
			unpainted.AddEffect(w)

			Expect(w.Model().Size()).To(Equal(dynamo.Vector{X: 64, Y: 48}))
		})
	})

	Describe("grab", func() {
		It("anchors at the surface-local point and starts the clock", func() {
			actor.SetPosition(dynamo.Vector{X: 30, Y: 20})
			w.Grab(40, 30)

			Expect(w.Anchor()).NotTo(BeNil())
			Expect(w.Anchor().Position()).To(Equal(dynamo.Vector{X: 10, Y: 10}))
			Expect(w.GrabState()).To(Equal("grabbed"))
			Expect(w.Ticking()).To(BeTrue())
		})

		It("is a no-op without a model", func() {
			actor.RemoveEffect(w)

			Expect(func() {
				w.Grab(1, 1)
				w.MoveBy(3, 3)
			}).NotTo(Panic())
			Expect(w.Anchor()).To(BeNil())
			Expect(w.Ticking()).To(BeFalse())
		})

		It("panics when an anchor is already held", func() {
			w.Grab(10, 10)
			Expect(func() { w.Grab(20, 20) }).To(PanicWith(MatchError(dynamo.ErrContract)))
		})

		It("finishes a pending ungrab before taking a new anchor", func() {
			w.Grab(10, 10)
			w.MoveBy(40, 0)
			w.Ungrab()
			Expect(w.UngrabPending()).To(BeTrue())
			previous := w.Anchor()

			w.Grab(50, 20)

			Expect(previous.Released()).To(BeTrue())
			Expect(w.Anchor()).NotTo(BeIdenticalTo(previous))
			Expect(w.GrabState()).To(Equal("grabbed"))
			Expect(w.Model().Anchors()).To(Equal(1))
		})

		It("resets model drift to the origin", func() {
			w.Model().MoveBy(dynamo.Vector{X: -7, Y: 3})
			w.Grab(10, 10)
			Expect(w.Model().Origin()).To(Equal(dynamo.Vector{}))
		})
	})

	Describe("move", func() {
		It("keeps the anchor under the pointer while the surface follows", func() {
			w.Grab(10, 10)
			actor.MoveBy(dynamo.Vector{X: 5})
			w.MoveBy(5, 0)

			Expect(w.Model().Origin()).To(Equal(dynamo.Vector{X: -5}))
			screen := actor.Position().Add(w.Anchor().Position())
			Expect(screen).To(Equal(dynamo.Vector{X: 15, Y: 10}))
		})

		It("is ignored without an anchor", func() {
			w.MoveBy(5, 5)
			Expect(w.Ticking()).To(BeFalse())
			Expect(w.Model().Origin()).To(Equal(dynamo.Vector{}))
		})

		It("settles back onto the undeformed rectangle", func() {
			w.Grab(10, 10)
			actor.MoveBy(dynamo.Vector{X: 5})
			w.MoveBy(5, 0)
			w.Ungrab()
			settle()

			ext := w.Model().QueryExtremes()
			want := [4]dynamo.Vector{{X: 0, Y: 0}, {X: 102, Y: 0}, {X: 0, Y: 52}, {X: 102, Y: 52}}
			for i := range want {
				Expect(ext[i].Near(want[i], 1e-6)).To(BeTrue(), "extreme %d is %v", i, ext[i])
			}
		})
	})

	Describe("ungrab", func() {
		It("panics without a grab", func() {
			Expect(func() { w.Ungrab() }).To(PanicWith(MatchError(dynamo.ErrContract)))
		})

		It("panics when already pending", func() {
			w.Grab(10, 10)
			w.Ungrab()
			Expect(func() { w.Ungrab() }).To(PanicWith(MatchError(dynamo.ErrContract)))
		})

		It("releases at once when the clock has stopped", func() {
			w.Grab(10, 10)
			frame()
			Expect(w.Ticking()).To(BeFalse())

			a := w.Anchor()
			w.Ungrab()

			Expect(a.Released()).To(BeTrue())
			Expect(w.Anchor()).To(BeNil())
			Expect(w.UngrabPending()).To(BeFalse())
			Expect(w.GrabState()).To(Equal("idle"))
		})

		It("defers the release until the mesh settles", func() {
			w.Grab(10, 10)
			actor.MoveBy(dynamo.Vector{X: 30, Y: 10})
			w.MoveBy(30, 10)
			w.Ungrab()

			a := w.Anchor()
			Expect(w.UngrabPending()).To(BeTrue())

			for i := 0; i < 5000 && w.Ticking(); i++ {
				Expect(w.Anchor()).NotTo(BeNil())
				Expect(a.Released()).To(BeFalse())
				frame()
			}

			Expect(w.Ticking()).To(BeFalse())
			Expect(a.Released()).To(BeTrue())
			Expect(w.Anchor()).To(BeNil())
			Expect(w.Model().Anchors()).To(BeZero())
			Expect(w.Enabled()).To(BeFalse())
		})
	})

	Describe("frames", func() {
		It("flags a step that diverged and restarted at rest", func() {
			var got []Frame
			bad, err := New(loop, src,
				WithIntegrator(func() dynamo.Integrator { return nanStepper{} }),
				WithObserver(ObserverFunc(func(f Frame) { got = append(got, f) })),
			)
			Expect(err).NotTo(HaveOccurred())
			other := host.NewActor("other", dynamo.Vector{}, dynamo.Vector{X: 100, Y: 50})
			other.AddEffect(bad)

			bad.Grab(10, 10)
			bad.MoveBy(25, 0)
			frame()

			Expect(got).To(HaveLen(1))
			Expect(got[0].Diverged).To(BeTrue())
			Expect(got[0].Settling).To(BeFalse())
			Expect(bad.Model().Resets()).To(Equal(1))
			Expect(frames).To(BeEmpty())
		})

		It("enables the effect and invalidates while settling", func() {
			w.Grab(10, 10)
			w.MoveBy(25, 0)
			redraws := actor.Redraws()

			frame()

			Expect(w.Enabled()).To(BeTrue())
			Expect(w.Invalidations()).To(Equal(1))
			Expect(actor.Redraws()).To(BeNumerically(">", redraws))
			Expect(frames).To(HaveLen(1))
			Expect(frames[0].Settling).To(BeTrue())
			Expect(frames[0].DeltaMs).To(Equal(int64(16)))
		})

		It("tracks the latest frame time", func() {
			w.Grab(10, 10)
			w.MoveBy(25, 0)
			for i := 0; i < 5; i++ {
				frame()
				Expect(w.lastMicros).To(Equal(src.NowMicros()))
			}
		})

		It("skips the step when no time has passed", func() {
			w.Grab(10, 10)
			w.MoveBy(25, 0)
			w.Ungrab()
			a := w.Anchor()

			src.Advance(400 * time.Microsecond)
			Expect(w.onFrame()).To(BeTrue())

			Expect(frames).To(BeEmpty())
			Expect(w.Frames()).To(BeZero())
			Expect(a.Released()).To(BeFalse())
			Expect(w.Ticking()).To(BeTrue())
		})

		It("survives monotonic counter wraparound", func() {
			src.Set(math.MaxInt64 - 8000)
			w.Grab(10, 10)
			w.MoveBy(25, 0)

			src.Set(8000)
			w.onFrame()

			Expect(frames).To(HaveLen(1))
			Expect(frames[0].DeltaMs).To(Equal(int64(16)))
			Expect(w.lastMicros).To(Equal(int64(8000)))
		})

		It("stops the clock exactly once when settled", func() {
			w.Grab(10, 10)
			w.MoveBy(25, 0)
			w.Ungrab()
			settle()

			Expect(loop.Pending()).To(BeZero())
			settled := 0
			for _, f := range frames {
				if !f.Settling {
					settled++
				}
			}
			Expect(settled).To(Equal(1))

			n := len(frames)
			for i := 0; i < 10; i++ {
				frame()
			}
			Expect(frames).To(HaveLen(n))
		})

		It("panics when a frame fires without a model", func() {
			detached, err := New(loop, src)
			Expect(err).NotTo(HaveOccurred())
			Expect(func() { detached.onFrame() }).To(PanicWith(MatchError(dynamo.ErrContract)))
		})

		It("never fires after destroy", func() {
			w.Grab(10, 10)
			w.MoveBy(25, 0)
			frame()
			n := len(frames)

			w.Destroy()
			for i := 0; i < 10; i++ {
				frame()
			}

			Expect(frames).To(HaveLen(n))
			Expect(loop.Pending()).To(BeZero())
			Expect(w.Model()).To(BeNil())
		})
	})

	Describe("size changes", func() {
		It("resizes the model and drops a pending ungrab", func() {
			w.Grab(10, 10)
			actor.MoveBy(dynamo.Vector{X: 30})
			w.MoveBy(30, 0)
			w.Ungrab()
			a := w.Anchor()

			actor.SetSize(dynamo.Vector{X: 200, Y: 80})

			Expect(a.Released()).To(BeTrue())
			Expect(w.Anchor()).To(BeNil())
			Expect(w.Model().Size()).To(Equal(dynamo.Vector{X: 202, Y: 82}))
			Expect(w.Model().Origin()).To(Equal(dynamo.Vector{}))
		})

		It("keeps a held anchor", func() {
			w.Grab(10, 10)
			actor.SetSize(dynamo.Vector{X: 120, Y: 50})
			Expect(w.Anchor()).NotTo(BeNil())
			Expect(w.GrabState()).To(Equal("grabbed"))
		})

		It("keeps a dragged anchor's point under the pointer", func() {
			w.Grab(10, 10)
			actor.MoveBy(dynamo.Vector{X: 30})
			w.MoveBy(30, 0)
			idx := w.Anchor().Index()
			pinned := w.Model().Point(idx)

			actor.SetSize(dynamo.Vector{X: 120, Y: 50})
			Expect(w.Model().Point(idx).Near(pinned, 1e-9)).To(BeTrue())

			settle()
			Expect(w.Model().Point(idx).Near(pinned, 1e-9)).To(BeTrue())
			tl := w.Model().QueryExtremes()[0]
			Expect(tl.Near(dynamo.Vector{}, 1e-9)).To(BeTrue())
		})

		It("does not start the clock", func() {
			actor.SetSize(dynamo.Vector{X: 300, Y: 300})
			Expect(w.Ticking()).To(BeFalse())
		})
	})

	Describe("paint", func() {
		It("deforms vertices with swapped texture axes", func() {
			v := host.TextureVertex{TX: 1, TY: 0}
			w.DeformVertex(&v)
			Expect(v.X).To(BeNumerically("~", 102, 1e-9))
			Expect(v.Y).To(BeNumerically("~", 0, 1e-9))

			v = host.TextureVertex{TX: 0, TY: 1}
			w.DeformVertex(&v)
			Expect(v.X).To(BeNumerically("~", 0, 1e-9))
			Expect(v.Y).To(BeNumerically("~", 52, 1e-9))
		})

		It("returns the same vertex for the same model state", func() {
			w.Grab(10, 10)
			w.MoveBy(15, 5)
			frame()

			a := host.TextureVertex{TX: 0.3, TY: 0.6}
			b := a
			w.DeformVertex(&a)
			w.DeformVertex(&b)
			Expect(a).To(Equal(b))
		})

		It("only ever grows the paint volume", func() {
			plain, _ := actor.PaintVolume(host.VolumePlain)

			w.Grab(90, 40)
			actor.MoveBy(dynamo.Vector{X: 60, Y: -40})
			w.MoveBy(60, -40)
			w.Ungrab()

			for i := 0; i < 5000 && w.Ticking(); i++ {
				frame()
				vol, ok := actor.PaintVolume(host.VolumeDeformed)
				Expect(ok).To(BeTrue())
				Expect(vol.Box().Contains(plain.Box())).To(BeTrue())
				Expect(vol.Box().Contains(frames[len(frames)-1].Bounds) || !w.Enabled()).To(BeTrue())
			}
		})

		It("rounds the extremes outward", func() {
			w.Grab(10, 10)
			w.MoveBy(7.3, 2.1)
			frame()

			vol := host.PaintVolume{}
			w.ExtendPaintVolume(&vol)
			b := vol.Box()
			Expect(b.X1).To(Equal(math.Floor(b.X1)))
			Expect(b.X2).To(Equal(math.Ceil(b.X2)))
			Expect(b.Y1).To(Equal(math.Floor(b.Y1)))
			Expect(b.Y2).To(Equal(math.Ceil(b.Y2)))
		})

		It("leaves later volumes untouched after plain box queries", func() {
			w.Grab(10, 10)
			actor.MoveBy(dynamo.Vector{X: -50})
			w.MoveBy(-50, 0)
			frame()
			before, _ := actor.PaintVolume(host.VolumeDeformed)

			actor.SetPainted(false)
			Expect(w.PrePaint()).To(Equal(dynamo.Vector{X: 100, Y: 50}))
			actor.SetPainted(true)
			for i := 0; i < 3; i++ {
				Expect(w.PrePaint()).To(Equal(dynamo.Vector{X: 102, Y: 52}))
			}

			after, _ := actor.PaintVolume(host.VolumeDeformed)
			Expect(after).To(Equal(before))
			Expect(after.Width).To(BeNumerically(">", 102))
		})
	})

	Describe("parameters", func() {
		It("rejects out-of-range values", func() {
			Expect(w.SetSpringK(11)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(w.SetFriction(1)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(w.SetSlowdownFactor(6)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(w.SetMovementRange(5)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(w.Params()).To(Equal(dynamo.DefaultParams()))
		})

		It("applies live to the model", func() {
			Expect(w.SetSpringK(5)).To(Succeed())
			Expect(w.SetFriction(7)).To(Succeed())
			Expect(w.SetMovementRange(250)).To(Succeed())
			Expect(w.SetSlowdownFactor(2)).To(Succeed())

			Expect(w.Model().SpringK()).To(Equal(5.0))
			Expect(w.Model().Friction()).To(Equal(7.0))
			Expect(w.Model().MaximumRange()).To(Equal(250.0))
			Expect(w.Params().SlowdownFactor).To(Equal(2.0))
		})

		It("validates construction params", func() {
			p := dynamo.DefaultParams()
			p.Friction = 20
			_, err := New(loop, src, WithParams(p))
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})
})
