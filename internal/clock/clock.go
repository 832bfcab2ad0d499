// Package clock drives frame-based animation without threads.
//
// A [Loop] holds recurring timeouts and fires the ones that are due each
// time its owner calls [Loop.Dispatch]. Time comes from a [Source] in
// monotonic microseconds, either the real clock ([Monotonic]) or a
// [Manual] one that tests and headless replays advance by hand.
package clock

import (
	"math"
	"time"
)

// FrameInterval is the nominal period between animation frames.
const FrameInterval = 16 * time.Millisecond

// Source reports monotonic time in microseconds.
type Source interface {
	NowMicros() int64
}

type SourceFunc func() int64

func (f SourceFunc) NowMicros() int64 { return f() }

// Monotonic returns a Source counting microseconds since the call.
func Monotonic() Source {
	start := time.Now()
	return SourceFunc(func() int64 {
		return time.Since(start).Microseconds()
	})
}

// Manual is a Source that only moves when told to.
type Manual struct {
	now int64
}

func NewManual(start int64) *Manual {
	return &Manual{now: start}
}

func (m *Manual) NowMicros() int64 { return m.now }

func (m *Manual) Set(micros int64) { m.now = micros }

func (m *Manual) Advance(d time.Duration) {
	m.now += d.Microseconds()
}

// Elapsed returns now-last for a counter that wraps at math.MaxInt64.
// last > now is taken as a wrap, so the result is never negative.
func Elapsed(last, now int64) int64 {
	if last > now {
		return (math.MaxInt64 - last) + now
	}
	return now - last
}
