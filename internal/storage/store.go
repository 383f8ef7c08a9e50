package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/san-kum/lifesim/internal/metrics"
)

const (
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
)

// Store records headless runs under baseDir, one directory per run. Only
// run statistics are kept; grids are never written.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrapf(os.MkdirAll(s.baseDir, 0755), "[storage.Init] failed to create %s", s.baseDir)
}

type RunMetadata struct {
	ID          string                  `json:"id"`
	Source      string                  `json:"source"`
	Timestamp   time.Time               `json:"timestamp"`
	Rows        int                     `json:"rows"`
	Cols        int                     `json:"cols"`
	Seed        int64                   `json:"seed"`
	Density     float64                 `json:"density"`
	Generations int                     `json:"generations"`
	Stable      bool                    `json:"stable"`
	Stats       metrics.PopulationStats `json:"stats"`
}

// Sample is one row of population.csv.
type Sample struct {
	Generation int `csv:"generation"`
	Population int `csv:"population"`
}

// Save writes meta and the population series. meta.ID and meta.Timestamp are
// filled in when empty; the run ID is returned.
func (s *Store) Save(meta RunMetadata, populations []int) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d_%d", meta.Source, meta.Seed, meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrapf(err, "[storage.Save] failed to create run dir %s", runDir)
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", errors.Wrap(err, "[storage.Save] failed to create metadata")
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", errors.Wrap(err, "[storage.Save] failed to encode metadata")
	}

	csvFile, err := os.Create(filepath.Join(runDir, populationFile))
	if err != nil {
		return "", errors.Wrap(err, "[storage.Save] failed to create population csv")
	}
	defer csvFile.Close()

	samples := make([]Sample, len(populations))
	for i, p := range populations {
		samples[i] = Sample{Generation: i, Population: p}
	}
	if err := gocsv.MarshalFile(&samples, csvFile); err != nil {
		return "", errors.Wrap(err, "[storage.Save] failed to write population csv")
	}

	return meta.ID, nil
}

// List returns all readable runs, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "[storage.List] failed to read data dir")
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
		return nil, errors.Wrapf(err, "[storage.Load] failed to read run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "[storage.Load] failed to decode run %s", runID)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, populationFile))
	if err != nil {
		return nil, errors.Wrapf(err, "[storage.LoadSamples] failed to open run %s", runID)
	}
	defer file.Close()

	samples := []Sample{}
	if err := gocsv.UnmarshalFile(file, &samples); err != nil {
		return nil, errors.Wrapf(err, "[storage.LoadSamples] failed to parse run %s", runID)
	}
	return samples, nil
}
