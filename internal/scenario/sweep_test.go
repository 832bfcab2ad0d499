package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/wobbly/internal/config"
	"github.com/san-kum/wobbly/internal/dynamo"
)

func TestSweepValues(t *testing.T) {
	tests := []struct {
		sw   Sweep
		want []float64
	}{
		{Sweep{Min: 2, Max: 10, Steps: 5}, []float64{2, 4, 6, 8, 10}},
		{Sweep{Min: 3, Max: 9, Steps: 1}, []float64{3}},
		{Sweep{Min: 1, Max: 1, Steps: 3}, []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		got := tt.sw.Values()
		if len(got) != len(tt.want) {
			t.Fatalf("expected %v, got %v", tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("value %d: expected %f, got %f", i, tt.want[i], got[i])
			}
		}
	}
}

func TestRunSweepSlowdown(t *testing.T) {
	sc, _ := Builtin("flick")
	cfg := config.DefaultConfig()

	points, err := RunSweep(context.Background(), sc, cfg, Sweep{Param: "slowdown_factor", Min: 1, Max: 4, Steps: 4})
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	for i, p := range points {
		if p.Value != float64(i+1) {
			t.Errorf("point %d: expected value %d, got %f", i, i+1, p.Value)
		}
		if p.Result.Params.SlowdownFactor != p.Value {
			t.Errorf("point %d ran with slowdown %f", i, p.Result.Params.SlowdownFactor)
		}
		if !p.Result.Settled {
			t.Errorf("point %d did not settle", i)
		}
	}
	if len(points[3].Result.Frames) <= len(points[0].Result.Frames) {
		t.Errorf("slowdown 4 took %d frames, slowdown 1 took %d", len(points[3].Result.Frames), len(points[0].Result.Frames))
	}

	if cfg.Params.SlowdownFactor != dynamo.DefaultSlowdownFactor {
		t.Error("sweep should not modify the caller's config")
	}
}

func TestRunSweepErrors(t *testing.T) {
	sc, _ := Builtin("flick")
	cfg := config.DefaultConfig()

	tests := []struct {
		name string
		sw   Sweep
	}{
		{"unknown param", Sweep{Param: "mass", Min: 1, Max: 2, Steps: 2}},
		{"no steps", Sweep{Param: "friction", Min: 2, Max: 4}},
		{"inverted", Sweep{Param: "friction", Min: 4, Max: 2, Steps: 2}},
		{"out of range", Sweep{Param: "spring_k", Min: 8, Max: 12, Steps: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunSweep(context.Background(), sc, cfg, tt.sw)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}
