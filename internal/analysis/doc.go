// Package analysis derives scalar quantities from recorded trajectories.
//
//   - [Surface]: polytrope surface radius and mass parameter
//   - [Summarize]: extrema of y and z over a trajectory
//
// # Surface estimate
//
// The trajectory excludes the first non-positive y, so the surface lies
// between the last recorded point and the next step. It is estimated with
// one Newton step along the recorded slope:
//
//	est, err := analysis.Surface(traj)
//	fmt.Println(est.Xi1, est.MassParam)
package analysis
