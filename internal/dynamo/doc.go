// Package dynamo provides the core primitives shared by the integrator,
// the derivative models and the shooting search.
//
// The package defines the fundamental types for a second-order ODE reduced
// to the first-order pair (y, z) over an independent variable x:
//
//   - [State]: the triple (x, y, z)
//   - [Model]: a derivative model exposing dy/dx and dz/dx
//   - [Trajectory]: the recorded (xs, ys, zs) history of an integration
//
// # Example
//
//	m := models.NewPolytrope(1)
//	init := dynamo.State{X: 1e-6, Y: 1}
//	traj := sim.Integrate(m, init, 0.01, sim.SurfaceReached(), 1000)
//
// # Thread Safety
//
// Models are immutable values and may be shared between goroutines.
// A Trajectory is owned by the caller that requested the integration.
package dynamo
