package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/wobbly/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"euler":  func() dynamo.Integrator { return NewEuler() },
	"verlet": func() dynamo.Integrator { return NewVerlet() },
	"rk4":    func() dynamo.Integrator { return NewRK4() },
}

// ByName returns a fresh stepper. Steppers keep scratch buffers, so each
// model needs its own.
func ByName(name string) (dynamo.Integrator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q (available: %v): %w", name, Names(), dynamo.ErrUnknownIntegrator)
	}
	return ctor(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
