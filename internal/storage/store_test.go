package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
	"github.com/san-kum/wobbly/internal/host"
	"github.com/san-kum/wobbly/internal/scenario"
)

func testResult() *scenario.Result {
	return &scenario.Result{
		Scenario:   "flick",
		Params:     dynamo.DefaultParams(),
		Integrator: "verlet",
		Surface:    dynamo.Vector{X: 320, Y: 200},
		Frames: []effect.Frame{
			{
				Index: 1, Micros: 1016000, DeltaMs: 16, Settling: true,
				Extremes: [4]dynamo.Vector{{X: -3.5}, {X: 322.25, Y: 1}, {Y: 202}, {X: 322, Y: 202}},
				Bounds:   host.Box{X1: -4, X2: 323, Y2: 202},
				Rest:     dynamo.Vector{X: 322, Y: 202},
			},
			{
				Index: 2, Micros: 1032000, DeltaMs: 16,
				Extremes: [4]dynamo.Vector{{}, {X: 322}, {Y: 202}, {X: 322, Y: 202}},
				Bounds:   host.Box{X2: 322, Y2: 202},
				Rest:     dynamo.Vector{X: 322, Y: 202},
			},
		},
		Metrics:     map[string]float64{"steps": 2, "settle_ms": 32},
		Settled:     true,
		SimulatedMs: 32,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "flick" {
		t.Errorf("expected scenario 'flick', got '%s'", meta.Scenario)
	}
	if meta.Params != dynamo.DefaultParams() {
		t.Errorf("params not preserved: %+v", meta.Params)
	}
	if meta.Width != 320 || meta.Height != 200 {
		t.Errorf("expected 320x200, got %vx%v", meta.Width, meta.Height)
	}
	if meta.Frames != 2 || !meta.Settled {
		t.Errorf("unexpected summary: frames=%d settled=%v", meta.Frames, meta.Settled)
	}
	if meta.Metrics["settle_ms"] != 32 {
		t.Errorf("expected settle_ms 32, got %f", meta.Metrics["settle_ms"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	want := testResult().Frames
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d: got %+v, expected %+v", i, frames[i], want[i])
		}
	}
}

func TestSaveTwiceGetsDistinctIDs(t *testing.T) {
	st := New(t.TempDir())
	a, err := st.Save(testResult())
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(testResult())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("both runs saved as %s", a)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if _, err := st.Save(testResult()); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "not-a-run"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nothing-here"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("ghost"); !errors.Is(err, dynamo.ErrRunNotFound) {
		t.Errorf("expected run not found, got %v", err)
	}
	if _, err := st.LoadFrames("ghost"); !errors.Is(err, dynamo.ErrRunNotFound) {
		t.Errorf("expected run not found, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if got.ID != runID || got.Scenario != "flick" {
		t.Errorf("unexpected metadata %+v", got.RunMetadata)
	}
	if len(got.Trace) != 2 || got.Trace[0].Bounds.X1 != -4 {
		t.Errorf("unexpected trace %+v", got.Trace)
	}
}
