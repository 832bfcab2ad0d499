package scenario

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween"

	"github.com/san-kum/wobbly/internal/clock"
	"github.com/san-kum/wobbly/internal/config"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
	"github.com/san-kum/wobbly/internal/host"
	"github.com/san-kum/wobbly/internal/metrics"
)

// MaxSettleFrames bounds a settle step.
const MaxSettleFrames = 20000

// startMicros keeps the manual clock away from zero so the first
// timeout is not mistaken for an unset timestamp.
const startMicros = 1_000_000

// Result is the record of one scenario run.
type Result struct {
	Scenario    string
	Params      dynamo.Params
	Integrator  string
	Surface     dynamo.Vector
	Frames      []effect.Frame
	Metrics     map[string]float64
	Settled     bool
	SimulatedMs int64
}

type run struct {
	ctx      context.Context
	src      *clock.Manual
	loop     *clock.Loop
	actor    *host.Actor
	w        *effect.Wobbly
	interval time.Duration
	ticks    int
	fault    error
}

// Run plays sc headlessly on a manual clock. Every frame advances the
// clock by the configured interval and dispatches due timeouts, so runs
// are deterministic.
func Run(ctx context.Context, sc *Scenario, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Scenario:   sc.Name,
		Params:     cfg.Params,
		Integrator: cfg.Integrator,
	}
	set := metrics.Standard()

	src := clock.NewManual(startMicros)
	loop := clock.NewLoop(src)
	r := &run{
		ctx:      ctx,
		src:      src,
		loop:     loop,
		interval: time.Duration(cfg.FrameIntervalMs) * time.Millisecond,
	}

	w, err := effect.New(loop, src,
		effect.WithParams(cfg.Params),
		effect.WithIntegrator(cfg.NewIntegrator()),
		effect.WithObserver(set),
		effect.WithObserver(effect.ObserverFunc(func(f effect.Frame) {
			res.Frames = append(res.Frames, f)
			if r.fault == nil {
				r.fault = divergence(f)
			}
		})),
	)
	if err != nil {
		return nil, err
	}

	actor := host.NewActor(sc.Name, cfg.Surface.Position(), cfg.Surface.Size())
	actor.Tiles = cfg.Tiles
	actor.AddEffect(w)
	defer w.Destroy()

	r.actor, r.w = actor, w

	for i, st := range sc.Steps {
		if err := r.step(st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}

	res.Surface = actor.Size()
	res.Metrics = set.Values()
	res.Settled = !w.Ticking()
	res.SimulatedMs = int64(r.ticks) * r.interval.Milliseconds()
	return res, nil
}

func (r *run) frame() error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	r.src.Advance(r.interval)
	r.loop.Dispatch()
	r.ticks++
	return r.fault
}

// divergence turns a frame that restarted a blown-up mesh into an error.
func divergence(f effect.Frame) error {
	if !f.Diverged {
		return nil
	}
	return &dynamo.FrameError{
		Frame:   f.Index,
		Micros:  f.Micros,
		Wrapped: dynamo.ErrInvalidState,
	}
}

func (r *run) frames(ms int) error {
	n := int(math.Ceil(float64(ms) / float64(r.interval.Milliseconds())))
	for i := 0; i < n; i++ {
		if err := r.frame(); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) step(st Step) error {
	switch st.Action {
	case ActionGrab:
		if r.w.Anchor() != nil && !r.w.UngrabPending() {
			return fmt.Errorf("already holding an anchor: %w", dynamo.ErrInvalidScenario)
		}
		p := r.actor.Position()
		r.w.Grab(p.X+st.X, p.Y+st.Y)

	case ActionUngrab:
		if r.w.Anchor() == nil || r.w.UngrabPending() {
			return fmt.Errorf("nothing held: %w", dynamo.ErrInvalidScenario)
		}
		r.w.Ungrab()

	case ActionDrag:
		return r.drag(st)

	case ActionWait:
		return r.frames(st.DurationMs)

	case ActionResize:
		r.actor.SetSize(dynamo.Vector{X: st.X, Y: st.Y})

	case ActionSettle:
		for i := 0; r.w.Ticking(); i++ {
			if i == MaxSettleFrames {
				return &dynamo.FrameError{
					Frame:   r.w.Frames(),
					Micros:  r.src.NowMicros(),
					Wrapped: dynamo.ErrNotSettled,
				}
			}
			if err := r.frame(); err != nil {
				return err
			}
		}
	}
	return nil
}

// drag moves the pointer, and the surface with it, along an eased path.
// The surface follows the pointer exactly, as a compositor's window move
// would.
func (r *run) drag(st Step) error {
	fn, err := easeFunc(st.Ease)
	if err != nil {
		return err
	}

	ms := float32(st.DurationMs)
	if ms <= 0 {
		ms = float32(r.interval.Milliseconds())
	}
	tx := gween.New(0, float32(st.X), ms, fn)
	ty := gween.New(0, float32(st.Y), ms, fn)

	var px, py float64
	for {
		x, doneX := tx.Update(float32(r.interval.Milliseconds()))
		y, doneY := ty.Update(float32(r.interval.Milliseconds()))
		d := dynamo.Vector{X: float64(x) - px, Y: float64(y) - py}
		px, py = float64(x), float64(y)

		r.actor.MoveBy(d)
		r.w.MoveBy(d.X, d.Y)
		if err := r.frame(); err != nil {
			return err
		}
		if doneX && doneY {
			return nil
		}
	}
}
