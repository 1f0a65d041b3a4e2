package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/ensemble"
	"github.com/san-kum/decaysim/internal/kinematics"
)

func TestGridSearch_Empty(t *testing.T) {
	g := NewGridSearch(nil, []float64{1e-3}, kinematics.TargetBasis)
	if _, _, err := g.Search(context.Background(), ensemble.Params{Runs: 1}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
}

func TestGridSearch_TieBreak(t *testing.T) {
	g := NewGridSearch([]int{500, 10}, []float64{1e-2, 1e-3}, kinematics.TargetBasis)
	points, best, err := g.Search(context.Background(), ensemble.Params{
		Spec: config.ParticleSpec{Type: "Photon", Pz: 1},
		Runs: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	if best.MaxIterations != 10 || best.Tolerance != 1e-3 {
		t.Errorf("expected cheapest tight setting, got %+v", best)
	}
}

func TestGridSearch_BestHasMaxRate(t *testing.T) {
	g := NewGridSearch([]int{1, 20000}, []float64{1e-3}, kinematics.TargetBasis)
	points, best, err := g.Search(context.Background(), ensemble.Params{
		Spec:      config.ParticleSpec{Type: "ZBoson"},
		Runs:      8,
		SeedStart: 21,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range points {
		if p.Rate > best.Rate {
			t.Errorf("point %+v beats best %+v", p, best)
		}
		if p.Rate < 0 || p.Rate > 1 {
			t.Errorf("rate out of range: %+v", p)
		}
	}
}

func TestBetter(t *testing.T) {
	tests := []struct {
		a, b Point
		want bool
	}{
		{Point{Rate: 0.9}, Point{Rate: 0.8}, true},
		{Point{Rate: 0.8, MaxIterations: 10}, Point{Rate: 0.8, MaxIterations: 20}, true},
		{Point{Rate: 0.8, MaxIterations: 10, Tolerance: 0.1}, Point{Rate: 0.8, MaxIterations: 10, Tolerance: 0.01}, false},
	}
	for _, tt := range tests {
		if got := better(tt.a, tt.b); got != tt.want {
			t.Errorf("better(%+v, %+v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}
