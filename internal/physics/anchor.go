package physics

import "github.com/san-kum/wobbly/internal/dynamo"

// Anchor pins one mesh point for the duration of a drag. The handle is
// the point the anchor was grabbed at, tracked through later moves.
type Anchor struct {
	model    *Model
	index    int
	handle   dynamo.Vector
	released bool
}

// MoveBy drags the pinned point and the handle by d.
func (a *Anchor) MoveBy(d dynamo.Vector) {
	if a.released {
		return
	}
	a.handle = a.handle.Add(d)
	a.model.setPoint(a.index, a.model.Point(a.index).Add(d))
}

// Position is the handle position in model-local coordinates.
func (a *Anchor) Position() dynamo.Vector { return a.handle }

// Index is the mesh point this anchor pins.
func (a *Anchor) Index() int { return a.index }

func (a *Anchor) Released() bool { return a.released }

// Release unpins the point. Safe to call more than once.
func (a *Anchor) Release() {
	if a.released {
		return
	}
	a.released = true
	a.model.release(a)
}
