package integrators

import "github.com/san-kum/wobbly/internal/dynamo"

type RK4 struct {
	k1, k2, k3 dynamo.State
	scratch    dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)
	half := dt * 0.5

	copy(r.k1, dyn.Derive(x, t))
	for i := range x {
		r.scratch[i] = x[i] + half*r.k1[i]
	}
	copy(r.k2, dyn.Derive(r.scratch, t+half))
	for i := range x {
		r.scratch[i] = x[i] + half*r.k2[i]
	}
	copy(r.k3, dyn.Derive(r.scratch, t+half))
	for i := range x {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := dyn.Derive(r.scratch, t+dt)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := range x {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+k4[i])
	}
	return result
}
