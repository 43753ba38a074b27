package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/rkshoot/internal/dynamo"
)

func TestDegrees(t *testing.T) {
	if got := Degrees(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("Degrees(pi/2) = %v", got)
	}
}

func TestSummaryContainsFields(t *testing.T) {
	out := Summary("shoot", []Field{
		F("theta low", "%.4f deg", 1.5),
		F("iterations", "%d", 20),
	})
	for _, want := range []string{"shoot", "theta low", "1.5000 deg", "iterations", "20"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPlotTrajectory(t *testing.T) {
	if out := PlotTrajectory(dynamo.NewTrajectory(0), PendulumLabels); out != "" {
		t.Errorf("expected empty plot for empty trajectory, got %q", out)
	}

	traj := dynamo.NewTrajectory(50)
	for i := 0; i < 50; i++ {
		x := float64(i) * 0.1
		traj.Append(dynamo.State{X: x, Y: math.Cos(x), Z: -math.Sin(x)})
	}

	out := PlotTrajectory(traj, PendulumLabels)
	if !strings.Contains(out, "phi (rad)") || !strings.Contains(out, "omega (rad/s)") {
		t.Errorf("expected captions in plot:\n%s", out)
	}
	if PlotOverlay(traj, PendulumLabels) == "" {
		t.Error("expected overlay plot")
	}
}

func TestProgressBarClamp(t *testing.T) {
	if got := ProgressBar(2, 10); !strings.Contains(got, strings.Repeat("█", 10)) {
		t.Errorf("expected full bar, got %q", got)
	}
	if got := ProgressBar(-1, 4); !strings.Contains(got, strings.Repeat("░", 4)) {
		t.Errorf("expected empty bar, got %q", got)
	}
}
