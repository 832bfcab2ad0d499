package effect

import (
	"fmt"

	"github.com/san-kum/wobbly/internal/clock"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/host"
	"github.com/san-kum/wobbly/internal/integrators"
	"github.com/san-kum/wobbly/internal/physics"
)

// grabState tracks the anchor. A release requested while the mesh is
// still settling is deferred until the frame that settles it.
type grabState uint8

const (
	grabIdle grabState = iota
	grabHeld
	grabPendingUngrab
)

func (s grabState) String() string {
	switch s {
	case grabHeld:
		return "grabbed"
	case grabPendingUngrab:
		return "pending-ungrab"
	default:
		return "idle"
	}
}

// Wobbly deforms its actor like a jelly while it is dragged, and lets
// the mesh settle back into a rectangle once released.
type Wobbly struct {
	params        dynamo.Params
	sched         clock.Scheduler
	src           clock.Source
	newIntegrator func() dynamo.Integrator

	surface     host.Surface
	unsubscribe func()

	model   *physics.Model
	anchor  *physics.Anchor
	grab    grabState
	timeout clock.ID

	lastMicros    int64
	enabled       bool
	frames        int
	invalidations int
	observers     []Observer
}

// Option configures a Wobbly at construction.
type Option func(*Wobbly)

// WithParams replaces the default tunables. New validates them.
func WithParams(p dynamo.Params) Option {
	return func(w *Wobbly) { w.params = p }
}

// WithIntegrator selects the stepper for every model this effect
// creates. ctor is called once per model.
func WithIntegrator(ctor func() dynamo.Integrator) Option {
	return func(w *Wobbly) { w.newIntegrator = ctor }
}

// WithObserver registers o for every performed frame.
func WithObserver(o Observer) Option {
	return func(w *Wobbly) { w.observers = append(w.observers, o) }
}

// New creates a detached, disabled effect. Frames are scheduled on
// sched and timed with src.
func New(sched clock.Scheduler, src clock.Source, opts ...Option) (*Wobbly, error) {
	w := &Wobbly{
		params: dynamo.DefaultParams(),
		sched:  sched,
		src:    src,
		newIntegrator: func() dynamo.Integrator {
			return integrators.NewVerlet()
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.params.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func contract(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrContract}, args...)...)
}

// AddObserver registers o after construction.
func (w *Wobbly) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *Wobbly) Enabled() bool { return w.enabled }

func (w *Wobbly) setEnabled(on bool) {
	if w.enabled == on {
		return
	}
	w.enabled = on
	if w.surface != nil {
		w.surface.QueueRedraw()
	}
}

// invalidate marks the deformed mesh stale so the next paint recomputes
// vertices and bounds.
func (w *Wobbly) invalidate() {
	w.invalidations++
	if w.surface != nil {
		w.surface.QueueRedraw()
	}
}

// SetActor attaches the effect to s, or detaches it when s is nil. Any
// previous model, anchor and frame subscription are discarded first. The
// effect always ends up disabled.
func (w *Wobbly) SetActor(s host.Surface) {
	w.teardown()
	w.surface = s

	if s != nil {
		size := PlainBoxSize(s)
		w.model = physics.New(
			dynamo.Vector{},
			size,
			w.params.SpringK,
			w.params.Friction,
			w.params.MovementRange,
			physics.WithIntegrator(w.newIntegrator()),
		)
		w.unsubscribe = s.OnSizeChanged(w.sizeChanged)
	}

	w.setEnabled(false)
}

// Destroy cancels any scheduled frame and drops the model. No frame
// callback runs after it returns.
func (w *Wobbly) Destroy() {
	w.teardown()
	w.enabled = false
	w.surface = nil
}

func (w *Wobbly) teardown() {
	if w.anchor != nil {
		w.anchor.Release()
		w.anchor = nil
	}
	w.grab = grabIdle
	w.model = nil
	w.stopClock()
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

func (w *Wobbly) sizeChanged() {
	if w.model == nil {
		return
	}
	size := PlainBoxSize(w.surface)

	// Move and resize leave anchors where they are, which would put a
	// pending one out of step with the pointer.
	w.releasePending()

	w.model.Resize(size)
	w.model.MoveTo(dynamo.Vector{})
}

// SetSpringK, SetFriction and SetMovementRange apply to the live model
// at once. Out-of-range values leave the effect unchanged and wrap
// dynamo.ErrParameterBounds.
func (w *Wobbly) SetSpringK(v float64) error {
	if err := dynamo.CheckRange("spring_k", v, dynamo.SpringKRange); err != nil {
		return err
	}
	w.params.SpringK = v
	if w.model != nil {
		w.model.SetSpringK(v)
	}
	return nil
}

func (w *Wobbly) SetFriction(v float64) error {
	if err := dynamo.CheckRange("friction", v, dynamo.FrictionRange); err != nil {
		return err
	}
	w.params.Friction = v
	if w.model != nil {
		w.model.SetFriction(v)
	}
	return nil
}

// SetSlowdownFactor divides every frame's elapsed time before stepping.
func (w *Wobbly) SetSlowdownFactor(v float64) error {
	if err := dynamo.CheckRange("slowdown_factor", v, dynamo.SlowdownFactorRange); err != nil {
		return err
	}
	w.params.SlowdownFactor = v
	return nil
}

func (w *Wobbly) SetMovementRange(v float64) error {
	if err := dynamo.CheckRange("movement_range", v, dynamo.MovementRangeRange); err != nil {
		return err
	}
	w.params.MovementRange = v
	if w.model != nil {
		w.model.SetMaximumRange(v)
	}
	return nil
}

func (w *Wobbly) Params() dynamo.Params   { return w.params }
func (w *Wobbly) Model() *physics.Model   { return w.model }
func (w *Wobbly) Anchor() *physics.Anchor { return w.anchor }
func (w *Wobbly) Surface() host.Surface   { return w.surface }
func (w *Wobbly) GrabState() string       { return w.grab.String() }
func (w *Wobbly) UngrabPending() bool     { return w.grab == grabPendingUngrab }
func (w *Wobbly) Holding() bool           { return w.grab == grabHeld }
func (w *Wobbly) Ticking() bool           { return w.timeout != 0 }
func (w *Wobbly) Frames() int             { return w.frames }
func (w *Wobbly) Invalidations() int      { return w.invalidations }
