package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	configFile   = "config.yaml"
)

// ErrRunNotFound is returned when a run directory has no metadata.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Solver    string             `json:"solver"`
	Cells     []int              `json:"cells"`
	Colors    int                `json:"colors"`
	Dt        float64            `json:"dt"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Time      float64            `json:"time"`
	Elapsed   float64            `json:"elapsed_seconds"`
	Particles int                `json:"particles"`
	Removed   int                `json:"removed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, the configuration it was
// run with and the metric series. It returns the run ID.
func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", cfg.Name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      cfg.Name,
		Timestamp: time.Now(),
		Solver:    cfg.Solver,
		Cells:     cfg.Grid.Cells,
		Colors:    cfg.Grid.Colors,
		Dt:        cfg.Grid.Dt,
		Seed:      cfg.Seed,
		Steps:     result.Steps,
		Time:      result.Time,
		Elapsed:   result.Elapsed.Seconds(),
		Particles: result.Particles,
		Removed:   result.Removed,
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), &result.Series); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, series *experiment.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"step", "time"}, series.Names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range series.Values {
		rec := make([]string, 0, len(row)+2)
		rec = append(rec, strconv.Itoa(series.Steps[i]), strconv.FormatFloat(series.Times[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadConfig returns the configuration a run was started with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadSeries(runID string) (*experiment.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}

	series := &experiment.Series{}
	if len(records) == 0 {
		return series, nil
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("%s: malformed series header %v", runID, records[0])
	}
	series.Names = append(series.Names, records[0][2:]...)

	for n, rec := range records[1:] {
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", runID, n+1, err)
		}
		t, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", runID, n+1, err)
		}
		row := make([]float64, len(rec)-2)
		for j := range row {
			if row[j], err = strconv.ParseFloat(rec[j+2], 64); err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", runID, n+1, err)
			}
		}
		series.Steps = append(series.Steps, step)
		series.Times = append(series.Times, t)
		series.Values = append(series.Values, row)
	}
	return series, nil
}
