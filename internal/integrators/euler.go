package integrators

import "github.com/san-kum/wobbly/internal/dynamo"

// Euler is the explicit first-order stepper. Cheap, and only stable for
// small sub-steps on stiff meshes.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
