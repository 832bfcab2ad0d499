package effect

import "github.com/san-kum/wobbly/internal/dynamo"

// Grab pins the mesh under the screen point (x, y). A pending ungrab is
// completed first. Without a model, for instance before the effect is
// attached, Grab does nothing.
//
// Grabbing while an anchor is still held panics.
func (w *Wobbly) Grab(x, y float64) {
	if w.anchor != nil && w.grab != grabPendingUngrab {
		panic(contract("grab while an anchor is held"))
	}

	w.releasePending()

	if w.model == nil {
		return
	}

	// The model only tracks relative motion; bring it back to the
	// surface's origin before taking a new anchor.
	w.model.MoveTo(dynamo.Vector{})
	w.ensureClock()

	pos := w.surface.Position()
	w.anchor = w.model.GrabAnchor(dynamo.Vector{X: x - pos.X, Y: y - pos.Y})
	w.grab = grabHeld
}

// MoveBy drags the anchor by (dx, dy) and shifts the mesh back by the
// same amount, so the mesh stays aligned with a surface that moved with
// the pointer. Without an anchor it does nothing.
func (w *Wobbly) MoveBy(dx, dy float64) {
	if w.anchor == nil {
		return
	}
	d := dynamo.Vector{X: dx, Y: dy}

	w.ensureClock()
	w.anchor.MoveBy(d)
	w.model.MoveBy(d.Neg())
}

// Ungrab releases the anchor. While frames are still running the release
// waits for the frame that settles the mesh.
//
// Ungrab without a held anchor panics.
func (w *Wobbly) Ungrab() {
	if w.anchor == nil || w.grab != grabHeld {
		panic(contract("ungrab without a held anchor (state %s)", w.grab))
	}

	if w.timeout != 0 {
		w.grab = grabPendingUngrab
		return
	}
	w.releaseAnchor()
}

func (w *Wobbly) releasePending() {
	if w.grab == grabPendingUngrab {
		w.releaseAnchor()
	}
}

func (w *Wobbly) releaseAnchor() {
	if w.anchor != nil {
		w.anchor.Release()
		w.anchor = nil
	}
	w.grab = grabIdle
}
