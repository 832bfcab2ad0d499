package effect

import (
	"github.com/san-kum/wobbly/internal/clock"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/host"
)

const usPerMs = 1000

// Frame describes one performed model step.
type Frame struct {
	Index    int
	Micros   int64
	DeltaMs  int64
	Settling bool
	Extremes [4]dynamo.Vector
	Bounds   host.Box
	// Rest is the undeformed mesh size.
	Rest dynamo.Vector
	// Diverged reports that the step blew up and the mesh was restarted
	// at rest.
	Diverged bool
}

type Observer interface {
	OnFrame(f Frame)
}

type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

func (w *Wobbly) ensureClock() {
	if w.timeout != 0 {
		return
	}
	w.lastMicros = w.src.NowMicros()
	w.timeout = w.sched.AddTimeout(clock.FrameInterval, w.onFrame)
}

// stopClock is the single place frames are cancelled. Safe to call when
// nothing is scheduled.
func (w *Wobbly) stopClock() {
	if w.timeout == 0 {
		return
	}
	w.sched.Remove(w.timeout)
	w.timeout = 0
}

// onFrame steps the model by the time since the previous frame. It
// returns false, and cancels itself, once the mesh has settled.
func (w *Wobbly) onFrame() bool {
	if w.model == nil {
		panic(contract("frame without a model"))
	}

	now := w.src.NowMicros()
	deltaMs := clock.Elapsed(w.lastMicros, now) / usPerMs
	w.lastMicros = now

	// No time passed: stepping or releasing anchors now would not mean
	// anything. Try again next frame.
	if deltaMs == 0 {
		return true
	}

	resets := w.model.Resets()
	settling := w.model.Step(float64(deltaMs) / w.params.SlowdownFactor)
	w.frames++

	if settling {
		w.setEnabled(true)
		w.invalidate()
	} else {
		w.releasePending()
		w.setEnabled(false)
		w.stopClock()
	}

	w.notify(Frame{
		Index:    w.frames,
		Micros:   now,
		DeltaMs:  deltaMs,
		Settling: settling,
		Extremes: w.model.QueryExtremes(),
		Bounds:   w.extremesBox(),
		Rest:     w.model.Size(),
		Diverged: w.model.Resets() != resets,
	})
	return settling
}

func (w *Wobbly) notify(f Frame) {
	for _, o := range w.observers {
		o.OnFrame(f)
	}
}
