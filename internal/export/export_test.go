package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/models"
	"github.com/san-kum/rkshoot/internal/sim"
	"github.com/san-kum/rkshoot/internal/storage"
)

func pendulumTrajectory() *dynamo.Trajectory {
	return sim.Integrate(models.NewPendulumDrive(0.05), dynamo.State{}, 0.01, sim.Horizon(3), sim.DefaultMaxIter)
}

func TestWriteJSON(t *testing.T) {
	traj := pendulumTrajectory()
	meta := &storage.RunMetadata{ID: "pendulum_abc", Model: "pendulum", Param: 0.05, Step: 0.01, MaxIter: 1000, Stop: "horizon"}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, traj); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Points != traj.Len() || len(got.Xs) != traj.Len() {
		t.Errorf("expected %d points, got %d", traj.Len(), got.Points)
	}
	if got.Stop != "horizon" || got.ID != "pendulum_abc" {
		t.Errorf("unexpected metadata %+v", got)
	}
}

func TestWriteJSONNonFinite(t *testing.T) {
	traj := dynamo.NewTrajectory(1)
	traj.Append(dynamo.State{Y: math.NaN()})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, &storage.RunMetadata{}, traj); err == nil {
		t.Error("expected encoding error for NaN")
	}
}

func TestPlotReferenceLines(t *testing.T) {
	p, err := Plot(pendulumTrajectory(), PendulumFigure("shot", 3))
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if p.X.Max < 3 {
		t.Errorf("x axis should reach the target line, max %v", p.X.Max)
	}
	if p.Y.Max < math.Pi/2 {
		t.Errorf("y axis should include pi/2, max %v", p.Y.Max)
	}
}

func TestPlotEmpty(t *testing.T) {
	if _, err := Plot(dynamo.NewTrajectory(0), PolytropeFigure("empty")); !errors.Is(err, dynamo.ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.png")
	traj := sim.Integrate(models.NewPolytrope(1), dynamo.State{X: 1e-6, Y: 1}, 0.01, sim.SurfaceReached(), sim.DefaultMaxIter)

	if err := SavePNG(path, traj, PolytropeFigure("n = 1")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("png is empty")
	}
}
