package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/rkshoot/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Param     float64            `json:"param"`
	Step      float64            `json:"step"`
	MaxIter   int                `json:"max_iter"`
	Stop      string             `json:"stop"`
	Points    int                `json:"points"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata and trajectory under a fresh run id.
// ID, Timestamp and Points in meta are filled in.
func (s *Store) Save(meta RunMetadata, traj *dynamo.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Model, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Points = traj.Len()
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), traj); err != nil {
		return "", err
	}

	return runID, nil
}

var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	return f.Close()
}

func writeTrajectory(path string, traj *dynamo.Trajectory) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, traj); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes the trajectory as x,y,z rows with a header.
func WriteCSV(out io.Writer, traj *dynamo.Trajectory) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		row := []string{
			strconv.FormatFloat(traj.Xs[i], 'g', -1, 64),
			strconv.FormatFloat(traj.Ys[i], 'g', -1, 64),
			strconv.FormatFloat(traj.Zs[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("trajectory file has no header")
	}

	traj := dynamo.NewTrajectory(len(records) - 1)
	for i, record := range records[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(record))
		}

		var v [3]float64
		for j := range v {
			v[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		traj.Append(dynamo.State{X: v[0], Y: v[1], Z: v[2]})
	}

	return traj, nil
}
