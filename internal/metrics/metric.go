package metrics

import (
	"github.com/san-kum/wobbly/internal/effect"
)

// Metric accumulates a single number over the frames of a run.
type Metric interface {
	Name() string
	Observe(f effect.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to a group of metrics. It satisfies
// effect.Observer so it can be attached to a running effect.
type Set []Metric

func (s Set) OnFrame(f effect.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Standard returns the metrics recorded for every scenario run.
func Standard() Set {
	return Set{
		NewStepCount(),
		NewSettleTime(),
		NewPeakDisplacement(),
		NewBoundsGrowth(),
		NewWobbleFrequency(),
	}
}
