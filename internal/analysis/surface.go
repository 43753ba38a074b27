package analysis

import (
	"errors"
	"fmt"

	"github.com/san-kum/rkshoot/internal/dynamo"
)

var ErrNoCrossing = errors.New("analysis: trajectory is not descending toward the surface")

type SurfaceEstimate struct {
	// Xi1 is the first zero of y.
	Xi1 float64
	// Slope is dy/dx at the last recorded point.
	Slope float64
	// MassParam is -xi1^2 dy/dx evaluated with the recorded slope.
	MassParam float64
	// Last is the state the estimate was taken from.
	Last dynamo.State
}

// Surface estimates where y first reaches zero. For a non-integer index a
// stage can take a fractional power of a negative y; the trajectory turns
// NaN there and the estimate is taken from the last finite point instead.
func Surface(traj *dynamo.Trajectory) (SurfaceEstimate, error) {
	last, err := traj.Last()
	if err != nil {
		return SurfaceEstimate{}, err
	}
	if !last.IsValid() {
		i := traj.Len() - 1
		for i >= 0 && !traj.At(i).IsValid() {
			i--
		}
		if i < 0 {
			return SurfaceEstimate{}, fmt.Errorf("surface at x=%v: %w", last.X, dynamo.ErrInvalidState)
		}
		last = traj.At(i)
	}
	if last.Z >= 0 {
		return SurfaceEstimate{}, ErrNoCrossing
	}

	xi1 := last.X - last.Y/last.Z
	return SurfaceEstimate{
		Xi1:       xi1,
		Slope:     last.Z,
		MassParam: -xi1 * xi1 * last.Z,
		Last:      last,
	}, nil
}
