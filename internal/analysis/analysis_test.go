package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/models"
	"github.com/san-kum/rkshoot/internal/sim"
	"gonum.org/v1/gonum/floats/scalar"
)

func integratePolytrope(n float64) *dynamo.Trajectory {
	return sim.Integrate(models.NewPolytrope(n), dynamo.State{X: 1e-6, Y: 1}, 0.01, sim.SurfaceReached(), sim.DefaultMaxIter)
}

func TestSurfaceKnownPolytropes(t *testing.T) {
	tests := []struct {
		n         float64
		xi1       float64
		massParam float64
	}{
		{0, math.Sqrt(6), 2 * math.Sqrt(6)},
		{1, math.Pi, math.Pi},
		{3, 6.89685, 2.01824},
	}

	for _, tt := range tests {
		est, err := Surface(integratePolytrope(tt.n))
		if err != nil {
			t.Fatalf("n=%v: %v", tt.n, err)
		}
		if !scalar.EqualWithinAbs(est.Xi1, tt.xi1, 1e-3) {
			t.Errorf("n=%v: xi1 = %.5f, want %.5f", tt.n, est.Xi1, tt.xi1)
		}
		if !scalar.EqualWithinAbs(est.MassParam, tt.massParam, 5e-2) {
			t.Errorf("n=%v: mass parameter = %.5f, want %.5f", tt.n, est.MassParam, tt.massParam)
		}
	}
}

func TestSurfaceFractionalIndex(t *testing.T) {
	tests := []struct {
		n         float64
		xi1       float64
		massParam float64
	}{
		{1.5, 3.65375, 2.71406},
		{2.5, 5.35528, 2.18720},
	}

	for _, tt := range tests {
		est, err := Surface(integratePolytrope(tt.n))
		if err != nil {
			t.Fatalf("n=%v: %v", tt.n, err)
		}
		if !est.Last.IsValid() {
			t.Errorf("n=%v: estimate taken from %+v", tt.n, est.Last)
		}
		if !scalar.EqualWithinAbs(est.Xi1, tt.xi1, 1e-3) {
			t.Errorf("n=%v: xi1 = %.5f, want %.5f", tt.n, est.Xi1, tt.xi1)
		}
		if !scalar.EqualWithinAbs(est.MassParam, tt.massParam, 5e-2) {
			t.Errorf("n=%v: mass parameter = %.5f, want %.5f", tt.n, est.MassParam, tt.massParam)
		}
	}
}

func TestSurfaceErrors(t *testing.T) {
	if _, err := Surface(dynamo.NewTrajectory(0)); !errors.Is(err, dynamo.ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}

	rising := dynamo.NewTrajectory(1)
	rising.Append(dynamo.State{X: 1, Y: 0.5, Z: 0.1})
	if _, err := Surface(rising); !errors.Is(err, ErrNoCrossing) {
		t.Errorf("expected ErrNoCrossing, got %v", err)
	}

	rising.Append(dynamo.State{X: 2, Y: math.NaN(), Z: math.NaN()})
	if _, err := Surface(rising); !errors.Is(err, ErrNoCrossing) {
		t.Errorf("expected ErrNoCrossing behind NaN tail, got %v", err)
	}

	broken := dynamo.NewTrajectory(1)
	broken.Append(dynamo.State{X: 1, Y: math.NaN(), Z: -1})
	if _, err := Surface(broken); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	traj := dynamo.NewTrajectory(3)
	traj.Append(dynamo.State{X: 0, Y: 1, Z: 0})
	traj.Append(dynamo.State{X: 0.5, Y: 0.8, Z: -0.6})
	traj.Append(dynamo.State{X: 1, Y: 0.2, Z: -1.1})

	s, err := Summarize(traj)
	if err != nil {
		t.Fatal(err)
	}
	want := Summary{Points: 3, XStart: 0, XEnd: 1, YMin: 0.2, YMax: 1, ZMin: -1.1, ZMax: 0}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}

	if _, err := Summarize(dynamo.NewTrajectory(0)); err == nil {
		t.Error("expected error for empty trajectory")
	}
}
