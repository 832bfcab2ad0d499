package physics

import (
	"math"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/integrators"
)

const (
	// GridSize is the number of mesh points along each edge.
	GridSize  = 4
	numPoints = GridSize * GridSize

	// DefaultMass is the mass of every mesh point.
	DefaultMass = 15.0

	// MsPerUnit converts Step milliseconds into model time units.
	MsPerUnit = 16.0

	maxSubStep      = 0.5
	velocityEpsilon = 0.05
	distanceEpsilon = 0.5
)

// Corner indices into the mesh, in QueryExtremes order.
const (
	TopLeft     = 0
	TopRight    = GridSize - 1
	BottomLeft  = numPoints - GridSize
	BottomRight = numPoints - 1
)

// Model is a GridSize x GridSize mass-spring mesh spanning a rectangle.
// Each point is joined to its horizontal and vertical neighbours by springs
// whose rest length matches the undeformed grid spacing.
//
// State layout is [x0, y0, x1, y1, ..., vx0, vy0, vx1, vy1, ...].
type Model struct {
	origin   dynamo.Vector
	size     dynamo.Vector
	rest     [numPoints]dynamo.Vector
	state    dynamo.State
	pinned   [numPoints]int
	anchors  []*Anchor
	springK  float64
	friction float64
	maxRange float64
	mass     float64
	integ    dynamo.Integrator
	t        float64
	resets   int
}

type Option func(*Model)

func WithIntegrator(integ dynamo.Integrator) Option {
	return func(m *Model) { m.integ = integ }
}

// New creates a mesh at rest covering the rectangle at position with the
// given size.
func New(position, size dynamo.Vector, springK, friction, maxRange float64, opts ...Option) *Model {
	m := &Model{
		origin:   position,
		springK:  springK,
		friction: friction,
		maxRange: maxRange,
		mass:     DefaultMass,
		state:    make(dynamo.State, numPoints*4),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.integ == nil {
		m.integ = integrators.NewVerlet()
	}
	m.setRest(size)
	for i := 0; i < numPoints; i++ {
		m.setPoint(i, position.Add(m.rest[i]))
	}
	return m
}

func (m *Model) StateDim() int { return len(m.state) }

func (m *Model) setRest(size dynamo.Vector) {
	m.size = size
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			m.rest[row*GridSize+col] = dynamo.Vector{
				X: float64(col) * size.X / (GridSize - 1),
				Y: float64(row) * size.Y / (GridSize - 1),
			}
		}
	}
}

// Point returns the current position of mesh point i.
func (m *Model) Point(i int) dynamo.Vector {
	return dynamo.Vector{X: m.state[2*i], Y: m.state[2*i+1]}
}

func (m *Model) setPoint(i int, p dynamo.Vector) {
	m.state[2*i] = p.X
	m.state[2*i+1] = p.Y
}

func (m *Model) velocity(i int) dynamo.Vector {
	half := numPoints * 2
	return dynamo.Vector{X: m.state[half+2*i], Y: m.state[half+2*i+1]}
}

func (m *Model) setVelocity(i int, v dynamo.Vector) {
	half := numPoints * 2
	m.state[half+2*i] = v.X
	m.state[half+2*i+1] = v.Y
}

func (m *Model) Origin() dynamo.Vector { return m.origin }
func (m *Model) Size() dynamo.Vector   { return m.size }
func (m *Model) SpringK() float64      { return m.springK }
func (m *Model) Friction() float64     { return m.friction }
func (m *Model) MaximumRange() float64 { return m.maxRange }

func (m *Model) SetSpringK(k float64)      { m.springK = k }
func (m *Model) SetFriction(f float64)     { m.friction = f }
func (m *Model) SetMaximumRange(r float64) { m.maxRange = r }
func (m *Model) IsPinned(i int) bool       { return m.pinned[i] > 0 }
func (m *Model) Anchors() int              { return len(m.anchors) }

// Resets counts the steps that diverged and restarted the mesh at rest.
func (m *Model) Resets() int { return m.resets }

// MoveTo translates the whole mesh so its logical origin lands on p.
func (m *Model) MoveTo(p dynamo.Vector) {
	m.MoveBy(p.Sub(m.origin))
}

// MoveBy translates every point, pinned points and anchor handles
// included. Translation never deforms the mesh.
func (m *Model) MoveBy(d dynamo.Vector) {
	m.origin = m.origin.Add(d)
	for i := 0; i < numPoints; i++ {
		m.setPoint(i, m.Point(i).Add(d))
	}
	for _, a := range m.anchors {
		a.handle = a.handle.Add(d)
	}
}

// Resize changes the rest grid. Free points are redistributed at rest on
// the new grid; pinned points stay where they are so they remain under
// whatever is holding them. The origin follows the new grid.
func (m *Model) Resize(size dynamo.Vector) {
	m.setRest(size)
	ref := m.origin
	if a := m.firstPinned(); a >= 0 {
		ref = m.Point(a).Sub(m.rest[a])
	}
	m.origin = ref
	for i := 0; i < numPoints; i++ {
		if m.IsPinned(i) {
			continue
		}
		m.setPoint(i, ref.Add(m.rest[i]))
		m.setVelocity(i, dynamo.Vector{})
	}
}

// GrabAnchor pins the mesh point nearest to local and returns a handle
// for dragging it.
func (m *Model) GrabAnchor(local dynamo.Vector) *Anchor {
	nearest, best := 0, math.Inf(1)
	for i := 0; i < numPoints; i++ {
		if d := m.Point(i).Dist(local); d < best {
			nearest, best = i, d
		}
	}
	m.pinned[nearest]++
	m.setVelocity(nearest, dynamo.Vector{})

	a := &Anchor{model: m, index: nearest, handle: local}
	m.anchors = append(m.anchors, a)
	return a
}

func (m *Model) release(a *Anchor) {
	m.pinned[a.index]--
	for i, other := range m.anchors {
		if other == a {
			m.anchors = append(m.anchors[:i], m.anchors[i+1:]...)
			break
		}
	}
}

func (m *Model) firstPinned() int {
	for i := 0; i < numPoints; i++ {
		if m.IsPinned(i) {
			return i
		}
	}
	return -1
}

// Derive implements dynamo.System. Pinned points have zero derivative.
func (m *Model) Derive(x dynamo.State, _ float64) dynamo.State {
	half := numPoints * 2
	dx := make(dynamo.State, len(x))
	at := func(i int) dynamo.Vector { return dynamo.Vector{X: x[2*i], Y: x[2*i+1]} }

	for i := 0; i < numPoints; i++ {
		if m.IsPinned(i) {
			continue
		}
		p := at(i)
		v := dynamo.Vector{X: x[half+2*i], Y: x[half+2*i+1]}
		force := v.Scale(-m.friction)

		row, col := i/GridSize, i%GridSize
		for _, n := range [4][2]int{{row - 1, col}, {row + 1, col}, {row, col - 1}, {row, col + 1}} {
			if n[0] < 0 || n[0] >= GridSize || n[1] < 0 || n[1] >= GridSize {
				continue
			}
			j := n[0]*GridSize + n[1]
			stretch := at(j).Sub(p).Sub(m.rest[j].Sub(m.rest[i]))
			force = force.Add(stretch.Scale(m.springK))
		}

		acc := force.Scale(1 / m.mass)
		dx[2*i], dx[2*i+1] = v.X, v.Y
		dx[half+2*i], dx[half+2*i+1] = acc.X, acc.Y
	}
	return dx
}

// target is where point i would sit if the mesh were at rest, relative to
// the first pinned point or, with nothing pinned, to the centroid.
func (m *Model) target(i int) dynamo.Vector {
	if a := m.firstPinned(); a >= 0 {
		return m.Point(a).Add(m.rest[i].Sub(m.rest[a]))
	}
	var c, rc dynamo.Vector
	for j := 0; j < numPoints; j++ {
		c = c.Add(m.Point(j))
		rc = rc.Add(m.rest[j])
	}
	c = c.Scale(1.0 / numPoints)
	rc = rc.Scale(1.0 / numPoints)
	return c.Add(m.rest[i].Sub(rc))
}

func (m *Model) targets() [numPoints]dynamo.Vector {
	var ts [numPoints]dynamo.Vector
	for i := range ts {
		ts[i] = m.target(i)
	}
	return ts
}

func (m *Model) clampToRange() {
	ts := m.targets()
	for i := 0; i < numPoints; i++ {
		if m.IsPinned(i) {
			continue
		}
		d := m.Point(i).Sub(ts[i])
		if l := d.Len(); l > m.maxRange {
			m.setPoint(i, ts[i].Add(d.Scale(m.maxRange/l)))
		}
	}
}

func (m *Model) snapToRest() {
	ts := m.targets()
	for i := 0; i < numPoints; i++ {
		if !m.IsPinned(i) {
			m.setPoint(i, ts[i])
		}
		m.setVelocity(i, dynamo.Vector{})
	}
	m.origin = m.Point(TopLeft).Sub(m.rest[TopLeft])
}

// Step advances the mesh by ms milliseconds and reports whether it is
// still settling. Once motion falls below the stopping thresholds the
// mesh is snapped onto its rest shape and Step returns false.
func (m *Model) Step(ms float64) bool {
	units := ms / MsPerUnit
	if units > 0 {
		n := int(math.Ceil(units / maxSubStep))
		h := units / float64(n)
		for s := 0; s < n; s++ {
			m.state = m.integ.Step(m, m.state, m.t, h)
			m.t += h
			m.clampToRange()
		}
	}

	if !m.state.IsValid() {
		// Diverged. Nothing useful to animate from; restart at rest.
		m.resets++
		for i := 0; i < numPoints; i++ {
			m.setPoint(i, m.origin.Add(m.rest[i]))
		}
		m.snapToRest()
		return false
	}

	ts := m.targets()
	for i := 0; i < numPoints; i++ {
		if m.IsPinned(i) {
			continue
		}
		if m.velocity(i).Len() > velocityEpsilon || m.Point(i).Dist(ts[i]) > distanceEpsilon {
			return true
		}
	}
	m.snapToRest()
	return false
}

// QueryExtremes returns the four corner points: top-left, top-right,
// bottom-left, bottom-right.
func (m *Model) QueryExtremes() [4]dynamo.Vector {
	return [4]dynamo.Vector{
		m.Point(TopLeft),
		m.Point(TopRight),
		m.Point(BottomLeft),
		m.Point(BottomRight),
	}
}
