package metrics

import "github.com/san-kum/wobbly/internal/effect"

type StepCount struct {
	steps int
}

func NewStepCount() *StepCount { return &StepCount{} }

func (s *StepCount) Name() string           { return "steps" }
func (s *StepCount) Observe(f effect.Frame) { s.steps++ }
func (s *StepCount) Value() float64         { return float64(s.steps) }
func (s *StepCount) Reset()                 { s.steps = 0 }

// SettleTime is the simulated time, in milliseconds, from the first
// frame of a settling run to the frame that found the mesh at rest. A
// run that settles more than once reports the longest stretch.
type SettleTime struct {
	current int64
	longest int64
}

func NewSettleTime() *SettleTime { return &SettleTime{} }

func (s *SettleTime) Name() string { return "settle_ms" }

func (s *SettleTime) Observe(f effect.Frame) {
	s.current += f.DeltaMs
	if f.Settling {
		return
	}
	if s.current > s.longest {
		s.longest = s.current
	}
	s.current = 0
}

func (s *SettleTime) Value() float64 {
	if s.current > s.longest {
		return float64(s.current)
	}
	return float64(s.longest)
}

func (s *SettleTime) Reset() {
	s.current = 0
	s.longest = 0
}
