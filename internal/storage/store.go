package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/progs/internal/progenitor"
	"github.com/san-kum/progs/internal/stellar"
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
	Series    string             `json:"series"`
	ZAMS      string             `json:"zams"`
	Source    string             `json:"source"`
	Timestamp time.Time          `json:"timestamp"`
	Network   string             `json:"network"`
	Zones     int                `json:"zones"`
	Columns   []string           `json:"columns"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(p *progenitor.Progenitor, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%s_%s", p.Series, p.ZAMS, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Series:    p.Series,
		ZAMS:      p.ZAMS,
		Source:    p.Filepath,
		Timestamp: time.Now(),
		Network:   p.Network.Name,
		Zones:     p.Zones(),
		Columns:   p.Table.Columns(),
		Metrics:   finiteMetrics(metrics),
	}

	if err := writeRun(runDir, meta, p.Table); err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

var create = os.Create

// writeRun writes metadata.json and profile.csv into runDir.
func writeRun(runDir string, meta RunMetadata, t *stellar.Table) error {
	metaFile, err := create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := create(filepath.Join(runDir, "profile.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, t); err != nil {
		return err
	}
	return csvFile.Close()
}

// finiteMetrics drops values JSON cannot encode.
func finiteMetrics(metrics map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTable(runID string) (*stellar.Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one header row of column names followed by one row per
// zone. Non-finite values are written as NaN, +Inf or -Inf.
func WriteCSV(out io.Writer, t *stellar.Table) error {
	w := csv.NewWriter(out)

	if err := w.Write(t.Columns()); err != nil {
		return err
	}

	for i := 0; i < t.Len(); i++ {
		values := t.Row(i)
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = formatFloat(v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ReadCSV(in io.Reader) (*stellar.Table, error) {
	r := csv.NewReader(in)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, stellar.ErrEmptyTable
	}

	header := records[0]
	rows := records[1:]
	cols := make([][]float64, len(header))
	for j := range cols {
		cols[j] = make([]float64, len(rows))
	}

	for i, record := range rows {
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, header[j], err)
			}
			cols[j][i] = v
		}
	}

	t := stellar.NewTable(len(rows))
	for j, name := range header {
		if err := t.Set(name, cols[j]); err != nil {
			return nil, err
		}
	}
	return t, nil
}
