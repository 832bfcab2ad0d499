package dynamo

import (
	"fmt"
	"math"
)

// Vector is a 2D point or displacement.
type Vector struct {
	X, Y float64
}

func (v Vector) Add(o Vector) Vector    { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector    { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(f float64) Vector { return Vector{v.X * f, v.Y * f} }
func (v Vector) Neg() Vector            { return Vector{-v.X, -v.Y} }
func (v Vector) Len() float64           { return math.Hypot(v.X, v.Y) }
func (v Vector) Dist(o Vector) float64  { return v.Sub(o).Len() }
func (v Vector) String() string         { return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y) }
func (v Vector) Near(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

type State []float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a first-order ODE over a State laid out as
// [positions..., velocities...].
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

var (
	SpringKRange        = Range{2.0, 10.0}
	FrictionRange       = Range{2.0, 10.0}
	SlowdownFactorRange = Range{1.0, 5.0}
	MovementRangeRange  = Range{10.0, 500.0}
)

const (
	DefaultSpringK        = 8.0
	DefaultFriction       = 3.0
	DefaultSlowdownFactor = 1.0
	DefaultMovementRange  = 100.0
)

// Params are the tunables of the wobbly effect.
type Params struct {
	SpringK        float64 `yaml:"spring_k" json:"spring_k"`
	Friction       float64 `yaml:"friction" json:"friction"`
	SlowdownFactor float64 `yaml:"slowdown_factor" json:"slowdown_factor"`
	MovementRange  float64 `yaml:"movement_range" json:"movement_range"`
}

func DefaultParams() Params {
	return Params{
		SpringK:        DefaultSpringK,
		Friction:       DefaultFriction,
		SlowdownFactor: DefaultSlowdownFactor,
		MovementRange:  DefaultMovementRange,
	}
}

// Validate reports the first parameter outside its range.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
		r    Range
	}{
		{"spring_k", p.SpringK, SpringKRange},
		{"friction", p.Friction, FrictionRange},
		{"slowdown_factor", p.SlowdownFactor, SlowdownFactorRange},
		{"movement_range", p.MovementRange, MovementRangeRange},
	}
	for _, c := range checks {
		if err := CheckRange(c.name, c.v, c.r); err != nil {
			return err
		}
	}
	return nil
}

func CheckRange(name string, v float64, r Range) error {
	if !r.Contains(v) {
		return fmt.Errorf("%s=%g outside [%g, %g]: %w", name, v, r.Min, r.Max, ErrParameterBounds)
	}
	return nil
}

type FrameError struct {
	Frame   int
	Micros  int64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%dus): %v", e.Frame, e.Micros, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
