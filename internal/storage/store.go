package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
	"github.com/san-kum/wobbly/internal/host"
	"github.com/san-kum/wobbly/internal/scenario"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{
	"index", "micros", "delta_ms", "settling",
	"tl_x", "tl_y", "tr_x", "tr_y", "bl_x", "bl_y", "br_x", "br_y",
	"x1", "y1", "x2", "y2",
	"rest_w", "rest_h",
}

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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Integrator  string             `json:"integrator"`
	Params      dynamo.Params      `json:"params"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Frames      int                `json:"frames"`
	Settled     bool               `json:"settled"`
	SimulatedMs int64              `json:"simulated_ms"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run as <id>/metadata.json and <id>/frames.csv and
// returns the new id.
func (s *Store) Save(res *scenario.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(res.Scenario, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    res.Scenario,
		Timestamp:   now,
		Integrator:  res.Integrator,
		Params:      res.Params,
		Width:       res.Surface.X,
		Height:      res.Surface.Y,
		Frames:      len(res.Frames),
		Settled:     res.Settled,
		SimulatedMs: res.SimulatedMs,
		Metrics:     res.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), res.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	runID := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return runID, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
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

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func writeFrames(path string, frames []effect.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			strconv.FormatInt(fr.Micros, 10),
			strconv.FormatInt(fr.DeltaMs, 10),
			strconv.FormatBool(fr.Settling),
		}
		for _, e := range fr.Extremes {
			row = append(row, formatFloat(e.X), formatFloat(e.Y))
		}
		row = append(row,
			formatFloat(fr.Bounds.X1), formatFloat(fr.Bounds.Y1),
			formatFloat(fr.Bounds.X2), formatFloat(fr.Bounds.Y2),
			formatFloat(fr.Rest.X), formatFloat(fr.Rest.Y),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without
// valid metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]effect.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	if len(records) < 2 {
		return []effect.Frame{}, nil
	}

	frames := make([]effect.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		fr, err := parseFrame(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", runID, i+2, err)
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseFrame(rec []string) (effect.Frame, error) {
	var fr effect.Frame
	var err error

	if fr.Index, err = strconv.Atoi(rec[0]); err != nil {
		return fr, err
	}
	if fr.Micros, err = strconv.ParseInt(rec[1], 10, 64); err != nil {
		return fr, err
	}
	if fr.DeltaMs, err = strconv.ParseInt(rec[2], 10, 64); err != nil {
		return fr, err
	}
	if fr.Settling, err = strconv.ParseBool(rec[3]); err != nil {
		return fr, err
	}

	vals := make([]float64, 0, len(rec)-4)
	for _, field := range rec[4:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fr, err
		}
		vals = append(vals, v)
	}
	for i := range fr.Extremes {
		fr.Extremes[i] = dynamo.Vector{X: vals[2*i], Y: vals[2*i+1]}
	}
	fr.Bounds = host.Box{X1: vals[8], Y1: vals[9], X2: vals[10], Y2: vals[11]}
	fr.Rest = dynamo.Vector{X: vals[12], Y: vals[13]}
	return fr, nil
}
