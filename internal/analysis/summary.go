package analysis

import (
	"github.com/san-kum/rkshoot/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

type Summary struct {
	Points int
	XStart float64
	XEnd   float64
	YMin   float64
	YMax   float64
	ZMin   float64
	ZMax   float64
}

// Summarize reports the extent of a non-empty trajectory.
func Summarize(traj *dynamo.Trajectory) (Summary, error) {
	last, err := traj.Last()
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Points: traj.Len(),
		XStart: traj.Xs[0],
		XEnd:   last.X,
		YMin:   floats.Min(traj.Ys),
		YMax:   floats.Max(traj.Ys),
		ZMin:   floats.Min(traj.Zs),
		ZMax:   floats.Max(traj.Zs),
	}, nil
}
