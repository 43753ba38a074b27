package sim

import "github.com/san-kum/rkshoot/internal/dynamo"

// StopPredicate reports whether integration halts at the given state.
// It is checked before the state is recorded, so the state that satisfies
// it never appears in the trajectory.
type StopPredicate func(s dynamo.State) bool

// SurfaceReached stops once y is no longer positive.
func SurfaceReached() StopPredicate {
	return func(s dynamo.State) bool {
		return s.Y <= 0
	}
}

// Horizon stops once x exceeds bound.
func Horizon(bound float64) StopPredicate {
	return func(s dynamo.State) bool {
		return s.X > bound
	}
}

// AngleReached stops once y reaches target.
func AngleReached(target float64) StopPredicate {
	return func(s dynamo.State) bool {
		return s.Y >= target
	}
}

// Never keeps integrating until the iteration cap.
func Never() StopPredicate {
	return func(dynamo.State) bool { return false }
}
