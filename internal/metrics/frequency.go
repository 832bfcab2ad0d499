package metrics

import (
	"github.com/san-kum/wobbly/internal/analysis"
	"github.com/san-kum/wobbly/internal/effect"
)

// WobbleFrequency is the dominant oscillation frequency, in Hz, of the
// bottom-right corner over the frames in which the mesh was settling.
type WobbleFrequency struct {
	frames []effect.Frame
}

func NewWobbleFrequency() *WobbleFrequency { return &WobbleFrequency{} }

func (w *WobbleFrequency) Name() string { return "wobble_hz" }

func (w *WobbleFrequency) Observe(f effect.Frame) {
	if f.Settling {
		w.frames = append(w.frames, f)
	}
}

func (w *WobbleFrequency) Value() float64 {
	trace := analysis.CornerTrace(w.frames, 3)
	return analysis.DominantFrequency(trace, analysis.SampleRate(w.frames))
}

func (w *WobbleFrequency) Reset() { w.frames = w.frames[:0] }
