package host

import "github.com/san-kum/wobbly/internal/dynamo"

// DefaultTiles is the number of mesh tiles along each axis.
const DefaultTiles = 20

type Actor struct {
	Name  string
	Tiles int

	pos       dynamo.Vector
	size      dynamo.Vector
	painted   bool
	effects   []Effect
	listeners map[int]func()
	nextID    int
	redraws   int
}

func NewActor(name string, pos, size dynamo.Vector) *Actor {
	return &Actor{
		Name:      name,
		Tiles:     DefaultTiles,
		pos:       pos,
		size:      size,
		painted:   true,
		listeners: make(map[int]func()),
	}
}

func (a *Actor) Position() dynamo.Vector { return a.pos }
func (a *Actor) Size() dynamo.Vector     { return a.size }
func (a *Actor) Redraws() int            { return a.redraws }
func (a *Actor) QueueRedraw()            { a.redraws++ }

func (a *Actor) SetPosition(p dynamo.Vector) { a.pos = p }

func (a *Actor) MoveBy(d dynamo.Vector) { a.pos = a.pos.Add(d) }

// SetSize notifies size listeners when either dimension changes. Each
// changed dimension fires once, as separate width and height
// notifications would.
func (a *Actor) SetSize(s dynamo.Vector) {
	old := a.size
	a.size = s
	if s.X != old.X {
		a.notifySize()
	}
	if s.Y != old.Y {
		a.notifySize()
	}
}

// SetPainted toggles whether the actor can report a paint volume.
func (a *Actor) SetPainted(p bool) { a.painted = p }

func (a *Actor) notifySize() {
	ids := make([]int, 0, len(a.listeners))
	for id := range a.listeners {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if fn, ok := a.listeners[id]; ok {
			fn()
		}
	}
}

func (a *Actor) OnSizeChanged(fn func()) func() {
	a.nextID++
	id := a.nextID
	a.listeners[id] = fn
	return func() { delete(a.listeners, id) }
}

func (a *Actor) Listeners() int { return len(a.listeners) }

func (a *Actor) AddEffect(e Effect) {
	a.effects = append(a.effects, e)
	e.SetActor(a)
}

func (a *Actor) RemoveEffect(e Effect) {
	for i, other := range a.effects {
		if other == e {
			rest := make([]Effect, 0, len(a.effects)-1)
			rest = append(rest, a.effects[:i]...)
			a.effects = append(rest, a.effects[i+1:]...)
			e.SetActor(nil)
			return
		}
	}
}

// Effects returns the attached effects. Later adds and removes do not
// change a slice already returned.
func (a *Actor) Effects() []Effect { return a.effects }

func (a *Actor) PaintVolume(mode VolumeMode) (PaintVolume, bool) {
	if !a.painted {
		return PaintVolume{}, false
	}
	v := PaintVolume{Width: a.size.X, Height: a.size.Y}
	if mode == VolumePlain {
		return v, true
	}
	for _, e := range a.effects {
		if ve, ok := e.(VolumeEffect); ok && e.Enabled() {
			ve.ExtendPaintVolume(&v)
		}
	}
	return v, true
}

// MeshTiles is the tile count Mesh uses along each axis.
func (a *Actor) MeshTiles() int {
	if a.Tiles < 1 {
		return 1
	}
	return a.Tiles
}

// Mesh returns the (Tiles+1)^2 paint vertices, row-major, after every
// enabled deform effect has had its turn.
func (a *Actor) Mesh() []TextureVertex {
	tiles := a.MeshTiles()
	verts := make([]TextureVertex, 0, (tiles+1)*(tiles+1))
	for row := 0; row <= tiles; row++ {
		for col := 0; col <= tiles; col++ {
			tx := float64(col) / float64(tiles)
			ty := float64(row) / float64(tiles)
			verts = append(verts, TextureVertex{X: tx * a.size.X, Y: ty * a.size.Y, TX: tx, TY: ty})
		}
	}

	for _, e := range a.effects {
		de, ok := e.(DeformEffect)
		if !ok || !e.Enabled() {
			continue
		}
		for i := range verts {
			de.DeformVertex(&verts[i])
		}
	}
	return verts
}
