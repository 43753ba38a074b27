package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/storage"
)

type ExportData struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Param   float64            `json:"param"`
	Step    float64            `json:"step"`
	MaxIter int                `json:"max_iter"`
	Stop    string             `json:"stop"`
	Points  int                `json:"points"`
	Xs      []float64          `json:"xs"`
	Ys      []float64          `json:"ys"`
	Zs      []float64          `json:"zs"`
	Metrics map[string]float64 `json:"metrics"`
}

func newExportData(meta *storage.RunMetadata, traj *dynamo.Trajectory) ExportData {
	return ExportData{
		ID:      meta.ID,
		Model:   meta.Model,
		Param:   meta.Param,
		Step:    meta.Step,
		MaxIter: meta.MaxIter,
		Stop:    meta.Stop,
		Points:  traj.Len(),
		Xs:      traj.Xs,
		Ys:      traj.Ys,
		Zs:      traj.Zs,
		Metrics: meta.Metrics,
	}
}

// WriteJSON encodes a stored run. Non-finite values cannot be represented
// in JSON and make the encoder fail.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, traj))
}

func ExportJSON(path string, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, traj)
}
