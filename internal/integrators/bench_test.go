package integrators

import (
	"testing"

	"github.com/san-kum/wobbly/internal/dynamo"
)

func benchStepper(b *testing.B, integ dynamo.Integrator) {
	x := dynamo.State{1.0, 0.0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(oscillator{}, x, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B)  { benchStepper(b, NewEuler()) }
func BenchmarkVerlet(b *testing.B) { benchStepper(b, NewVerlet()) }
func BenchmarkRK4(b *testing.B)    { benchStepper(b, NewRK4()) }
