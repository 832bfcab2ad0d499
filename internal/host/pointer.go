package host

import "github.com/san-kum/wobbly/internal/dynamo"

// Grabber receives pointer gestures in screen coordinates.
type Grabber interface {
	Grab(x, y float64)
	MoveBy(dx, dy float64)
	Ungrab()
	Holding() bool
}

// Pointer turns press, move and release events into a window drag: the
// actor follows the pointer and the grabber sees the same deltas.
type Pointer struct {
	actor *Actor
	g     Grabber
	last  dynamo.Vector
	down  bool
}

func NewPointer(a *Actor, g Grabber) *Pointer {
	return &Pointer{actor: a, g: g}
}

func (p *Pointer) Down() bool { return p.down }

// Hit reports whether screen point at lies on the actor.
func (p *Pointer) Hit(at dynamo.Vector) bool {
	pos := p.actor.Position()
	box := Box{X1: pos.X, Y1: pos.Y, X2: pos.X + p.actor.Size().X, Y2: pos.Y + p.actor.Size().Y}
	return box.Contains(Box{X1: at.X, Y1: at.Y, X2: at.X, Y2: at.Y})
}

// Press starts a drag if at lies on the actor.
func (p *Pointer) Press(at dynamo.Vector) bool {
	if p.down || !p.Hit(at) {
		return false
	}
	p.g.Grab(at.X, at.Y)
	p.last = at
	p.down = true
	return true
}

func (p *Pointer) Move(at dynamo.Vector) {
	if !p.down {
		return
	}
	d := at.Sub(p.last)
	p.last = at
	if d == (dynamo.Vector{}) {
		return
	}
	p.actor.MoveBy(d)
	p.g.MoveBy(d.X, d.Y)
}

func (p *Pointer) Release() {
	if !p.down {
		return
	}
	p.down = false
	if p.g.Holding() {
		p.g.Ungrab()
	}
}
