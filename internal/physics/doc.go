// Package physics provides the deformable mass-spring mesh behind the
// wobbly effect.
//
// A [Model] covers a rectangle with a 4x4 grid of points joined by
// springs. The effect drives it through a small contract:
//
//	m := physics.New(dynamo.Vector{}, dynamo.Vector{X: 100, Y: 50}, 8, 3, 100)
//	a := m.GrabAnchor(dynamo.Vector{X: 10, Y: 10})
//	a.MoveBy(dynamo.Vector{X: 5})
//	for m.Step(16) {
//	    // repaint using m.DeformTexcoords and m.QueryExtremes
//	}
//	a.Release()
//
// The model implements [dynamo.System] and is advanced by any
// [dynamo.Integrator]; velocity Verlet is the default.
package physics
