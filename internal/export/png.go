package export

import (
	"errors"
	"image/color"
	"math"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Figure describes a y/z-versus-x plot of a trajectory.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	ZLabel string
	// VLine and HLine draw dashed reference lines when non-nil.
	VLine *float64
	HLine *float64
}

// PendulumFigure is the shooting result figure: phi and omega against time
// with the target time and pi/2 marked.
func PendulumFigure(title string, xFinal float64) Figure {
	half := math.Pi / 2
	return Figure{
		Title:  title,
		XLabel: "time (s)",
		YLabel: "phi (rad)",
		ZLabel: "omega (rad/s)",
		VLine:  &xFinal,
		HLine:  &half,
	}
}

func PolytropeFigure(title string) Figure {
	return Figure{
		Title:  title,
		XLabel: "xi",
		YLabel: "theta",
		ZLabel: "dtheta/dxi",
	}
}

// Plot builds the figure for a non-empty trajectory.
func Plot(traj *dynamo.Trajectory, fig Figure) (*plot.Plot, error) {
	if traj.Len() == 0 {
		return nil, dynamo.ErrEmptyTrajectory
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Legend.Top = true

	ys, zs := make(plotter.XYs, traj.Len()), make(plotter.XYs, traj.Len())
	for i := range traj.Xs {
		ys[i] = plotter.XY{X: traj.Xs[i], Y: traj.Ys[i]}
		zs[i] = plotter.XY{X: traj.Xs[i], Y: traj.Zs[i]}
	}

	yLine, err := plotter.NewLine(ys)
	if err != nil {
		return nil, err
	}
	yLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	zLine, err := plotter.NewLine(zs)
	if err != nil {
		return nil, err
	}
	zLine.Color = color.RGBA{R: 255, G: 127, B: 14, A: 255}

	p.Add(yLine, zLine)
	p.Legend.Add(fig.YLabel, yLine)
	p.Legend.Add(fig.ZLabel, zLine)

	if fig.VLine != nil {
		x := *fig.VLine
		v := dashed(plotter.XYs{{X: x, Y: p.Y.Min}, {X: x, Y: p.Y.Max}})
		if v != nil {
			p.Add(v)
		}
	}
	if fig.HLine != nil {
		y := *fig.HLine
		h := dashed(plotter.XYs{{X: p.X.Min, Y: y}, {X: p.X.Max, Y: y}})
		if h != nil {
			p.Add(h)
		}
	}

	return p, nil
}

func dashed(pts plotter.XYs) *plotter.Line {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil
	}
	l.Color = color.Black
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	l.LineStyle.Width = vg.Points(1)
	return l
}

// SavePNG renders the figure to path. The format follows the extension.
func SavePNG(path string, traj *dynamo.Trajectory, fig Figure) error {
	if path == "" {
		return errors.New("export: empty output path")
	}
	p, err := Plot(traj, fig)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
