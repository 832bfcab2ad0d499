package clock

import (
	"sort"
	"time"
)

// ID names a scheduled timeout. Zero is never a valid ID.
type ID uint64

// Scheduler runs recurring callbacks. A callback returning false is
// removed and never fires again.
type Scheduler interface {
	AddTimeout(interval time.Duration, fn func() bool) ID
	Remove(id ID) bool
}

type timeout struct {
	id       ID
	interval int64
	due      int64
	fn       func() bool
}

// Loop is a cooperative Scheduler. It never spawns goroutines: due
// callbacks run inside Dispatch, on the caller's goroutine.
type Loop struct {
	src      Source
	next     ID
	timeouts map[ID]*timeout
}

func NewLoop(src Source) *Loop {
	return &Loop{src: src, timeouts: make(map[ID]*timeout)}
}

func (l *Loop) Source() Source { return l.src }

func (l *Loop) AddTimeout(interval time.Duration, fn func() bool) ID {
	l.next++
	us := interval.Microseconds()
	if us < 1 {
		us = 1
	}
	l.timeouts[l.next] = &timeout{
		id:       l.next,
		interval: us,
		due:      l.src.NowMicros() + us,
		fn:       fn,
	}
	return l.next
}

// Remove cancels a timeout. It reports whether the timeout was pending.
func (l *Loop) Remove(id ID) bool {
	if _, ok := l.timeouts[id]; !ok {
		return false
	}
	delete(l.timeouts, id)
	return true
}

func (l *Loop) Pending() int { return len(l.timeouts) }

func (l *Loop) Active(id ID) bool {
	_, ok := l.timeouts[id]
	return ok
}

// Dispatch fires every timeout that is due, at most once each, and
// returns how many fired. A timeout removed by an earlier callback in
// the same pass does not fire.
func (l *Loop) Dispatch() int {
	now := l.src.NowMicros()

	due := make([]*timeout, 0, len(l.timeouts))
	for _, t := range l.timeouts {
		if t.due <= now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].id < due[j].id })

	fired := 0
	for _, t := range due {
		if _, ok := l.timeouts[t.id]; !ok {
			continue
		}
		fired++
		if !t.fn() {
			delete(l.timeouts, t.id)
			continue
		}
		t.due = now + t.interval
	}
	return fired
}
