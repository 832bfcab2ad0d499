package physics

import "github.com/san-kum/wobbly/internal/dynamo"

func bernstein(t float64) [GridSize]float64 {
	s := 1 - t
	return [GridSize]float64{s * s * s, 3 * s * s * t, 3 * s * t * t, t * t * t}
}

// DeformTexcoords maps a texture coordinate onto the deformed mesh by
// evaluating the bicubic Bezier patch spanned by the mesh points.
// Coordinates are taken in (row, column) order: uv.X runs down the
// surface and uv.Y across it. An undeformed mesh maps uv linearly onto
// its rectangle.
func (m *Model) DeformTexcoords(uv dynamo.Vector) dynamo.Vector {
	rows := bernstein(uv.X)
	cols := bernstein(uv.Y)

	var out dynamo.Vector
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			w := rows[r] * cols[c]
			out = out.Add(m.Point(r*GridSize + c).Scale(w))
		}
	}
	return out
}
