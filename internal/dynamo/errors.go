package dynamo

import "errors"

// Domain errors for the wobbly engine.
var (
	// ErrParameterBounds indicates a tunable outside its valid range.
	ErrParameterBounds = errors.New("wobbly: parameter out of valid bounds")

	// ErrInvalidState indicates the mesh state diverged (NaN or Inf).
	ErrInvalidState = errors.New("wobbly: invalid model state (NaN or Inf detected)")

	// ErrContract marks a violated grab/ungrab contract. It is only ever
	// carried by a panic.
	ErrContract = errors.New("wobbly: contract violation")

	// ErrUnknownPreset indicates a preset or scenario name with no entry.
	ErrUnknownPreset = errors.New("wobbly: unknown preset")

	// ErrUnknownIntegrator indicates an integrator name with no stepper.
	ErrUnknownIntegrator = errors.New("wobbly: unknown integrator")

	// ErrInvalidScenario indicates a scenario step that cannot be played:
	// an unknown action or easing, or a gesture out of order.
	ErrInvalidScenario = errors.New("wobbly: invalid scenario")

	// ErrNotSettled indicates a mesh still moving after the settle limit.
	ErrNotSettled = errors.New("wobbly: mesh did not settle")

	// ErrRunNotFound indicates a run id with no stored metadata.
	ErrRunNotFound = errors.New("wobbly: run not found")
)
