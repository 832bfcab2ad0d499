// Package dynamo provides the primitives shared by the wobbly engine.
//
// The package defines the value types and contracts the other packages
// build on:
//
//   - [Vector]: a 2D point or delta in surface-local pixels
//   - [State]: flat state vector advanced by an [Integrator]
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Params]: the tunables of the wobbly effect and their valid ranges
//
// # Errors
//
// Recoverable failures wrap one of the sentinel errors in errors.go.
// Contract violations inside the effect controller are not errors: they
// panic with a message wrapping [ErrContract].
package dynamo
