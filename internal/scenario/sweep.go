package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/wobbly/internal/config"
	"github.com/san-kum/wobbly/internal/dynamo"
)

// Sweep runs one scenario across evenly spaced values of a single
// physics parameter.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepPoint is the outcome of one value in a sweep.
type SweepPoint struct {
	Value  float64
	Result *Result
}

// sweepParams maps parameter names to the field they tune.
var sweepParams = map[string]func(*dynamo.Params) *float64{
	"spring_k":        func(p *dynamo.Params) *float64 { return &p.SpringK },
	"friction":        func(p *dynamo.Params) *float64 { return &p.Friction },
	"slowdown_factor": func(p *dynamo.Params) *float64 { return &p.SlowdownFactor },
	"movement_range":  func(p *dynamo.Params) *float64 { return &p.MovementRange },
}

// Values returns the parameter values the sweep visits.
func (s Sweep) Values() []float64 {
	if s.Steps == 1 {
		return []float64{s.Min}
	}
	out := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out
}

func (s Sweep) validate() error {
	if _, ok := sweepParams[s.Param]; !ok {
		return fmt.Errorf("unknown sweep parameter %q: %w", s.Param, dynamo.ErrParameterBounds)
	}
	if s.Steps < 1 {
		return fmt.Errorf("sweep needs at least one step, got %d: %w", s.Steps, dynamo.ErrParameterBounds)
	}
	if s.Max < s.Min {
		return fmt.Errorf("sweep max %g below min %g: %w", s.Max, s.Min, dynamo.ErrParameterBounds)
	}
	return nil
}

// RunSweep plays sc once per sweep value, each on its own goroutine with
// its own copy of cfg. Results come back in value order. The first
// failing run's error is returned.
func RunSweep(ctx context.Context, sc *Scenario, cfg *config.Config, sw Sweep) ([]SweepPoint, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}

	values := sw.Values()
	points := make([]SweepPoint, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, v float64) {
			defer wg.Done()

			cfgCopy := *cfg
			*sweepParams[sw.Param](&cfgCopy.Params) = v

			points[idx].Value = v
			points[idx].Result, errs[idx] = Run(ctx, sc, &cfgCopy)
		}(i, v)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.Param, values[i], err)
		}
	}
	return points, nil
}
