// Package dynamo provides the core primitives for real-time simulation of
// the membrane-potential model.
//
// The package defines the fundamental interfaces and types the rest of the
// module builds on:
//
//   - [State]: fixed three-variable state vector (x, y, z)
//   - [System]: vector field interface (dX/dt = f(X, input, t))
//   - [Stepper]: fixed-step numerical integrator interface
//   - [Observer] and [Metric]: per-tick trajectory consumers
//
// # Thread Safety
//
// Nothing in this package synchronizes access. A plugin instance is ticked
// by exactly one host thread at a time; independent instances share no
// mutable state and may run on separate cores.
package dynamo
