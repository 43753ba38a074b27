package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rkshoot/internal/dynamo"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// Labels names the y and z series of a trajectory.
type Labels struct {
	Y string
	Z string
}

var (
	PolytropeLabels = Labels{Y: "theta (density)", Z: "dtheta/dxi"}
	PendulumLabels  = Labels{Y: "phi (rad)", Z: "omega (rad/s)"}
)

// PlotSeries draws one series against its sample index.
func PlotSeries(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotTrajectory draws y and z of the trajectory as two stacked graphs.
func PlotTrajectory(traj *dynamo.Trajectory, labels Labels) string {
	if traj.Len() == 0 {
		return ""
	}
	span := fmt.Sprintf("x in [%.4g, %.4g]", traj.Xs[0], traj.Xs[traj.Len()-1])
	return PlotSeries(traj.Ys, labels.Y+", "+span) + "\n\n" + PlotSeries(traj.Zs, labels.Z+", "+span)
}

// PlotOverlay draws y and z in one graph.
func PlotOverlay(traj *dynamo.Trajectory, labels Labels) string {
	if traj.Len() == 0 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{traj.Ys, traj.Zs},
		asciigraph.Height(plotHeight+5),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends(labels.Y, labels.Z),
		asciigraph.Caption("y and z against step"),
	)
}
