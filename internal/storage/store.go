// Package storage persists finished runs as a directory per run, with a
// JSON metadata file and a CSV trajectory next to each other.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/JJonas1998/Projekt-9/internal/analysis"
	"github.com/JJonas1998/Projekt-9/internal/config"
	"github.com/JJonas1998/Projekt-9/internal/sim"
)

var csvHeader = []string{"time_s", "temp_c", "heater_w", "heatflow_w", "temp_uncontrolled_c"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is everything needed to reproduce and judge a run without
// re-reading the trajectory.
type RunMetadata struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Config    *config.Config   `json:"config"`
	Metrics   analysis.Metrics `json:"metrics"`
}

func (s *Store) Save(cfg *config.Config, result *sim.Result, metrics analysis.Metrics) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Config:    cfg,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for i, sample := range result.Controlled {
		row := []string{
			strconv.FormatFloat(sample.Time, 'f', 3, 64),
			strconv.FormatFloat(sample.Temperature, 'f', 6, 64),
			strconv.FormatFloat(sample.Heater, 'f', 3, 64),
			strconv.FormatFloat(sample.HeatFlow, 'f', 3, 64),
		}
		if i < len(result.Uncontrolled) {
			row = append(row, strconv.FormatFloat(result.Uncontrolled[i].Temperature, 'f', 6, 64))
		} else {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads a stored run back into simulator form. Rows
// missing an uncontrolled column are skipped from that trajectory only.
func (s *Store) LoadTrajectory(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		heater, _ := strconv.ParseFloat(record[2], 64)
		flow, _ := strconv.ParseFloat(record[3], 64)

		result.Controlled = append(result.Controlled, sim.Sample{
			Time:        t,
			Temperature: temp,
			Heater:      heater,
			HeatFlow:    flow,
		})

		if len(record) >= 5 {
			if open, err := strconv.ParseFloat(record[4], 64); err == nil {
				result.Uncontrolled = append(result.Uncontrolled, sim.Sample{
					Time:        t,
					Temperature: open,
				})
			}
		}
	}

	return result, nil
}
