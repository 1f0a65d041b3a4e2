package ensemble

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/metrics"
	"github.com/san-kum/decaysim/internal/particle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func zParams(runs int) Params {
	return Params{
		Spec:      config.ParticleSpec{Type: "ZBoson"},
		Runs:      runs,
		SeedStart: 100,
		Workers:   4,
		Options:   []particle.Option{particle.WithMaxIterations(20000)},
	}
}

func TestRun_CountsEveryRoot(t *testing.T) {
	res, err := Run(context.Background(), zParams(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Runs != 40 {
		t.Errorf("expected 40 runs, got %d", res.Runs)
	}
	total := 0
	for _, n := range res.Primary {
		total += n
	}
	if total != 40 {
		t.Errorf("expected 40 primary decays, got %d", total)
	}
	for ch, n := range res.Primary {
		if res.Channels["ZBoson: "+ch] != n {
			t.Errorf("channel %q: primary %d, tree count %d", ch, n, res.Channels["ZBoson: "+ch])
		}
	}
	if len(res.LeafEnergies) < 80 {
		t.Errorf("expected at least two leaves per run, got %d", len(res.LeafEnergies))
	}
	if rate := res.ConvergenceRate(); rate < 0 || rate > 1 {
		t.Errorf("convergence rate out of range: %f", rate)
	}
}

func TestRun_Reproducible(t *testing.T) {
	a, err := Run(context.Background(), zParams(16))
	if err != nil {
		t.Fatal(err)
	}
	p := zParams(16)
	p.Workers = 1
	b, err := Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Channels, b.Channels); diff != "" {
		t.Errorf("channel counts differ between worker counts (-4 +1):\n%s", diff)
	}
	if diff := cmp.Diff(a.LeafEnergies, b.LeafEnergies); diff != "" {
		t.Errorf("leaf energies differ (-4 +1):\n%s", diff)
	}
}

func TestRun_StableParticle(t *testing.T) {
	res, err := Run(context.Background(), Params{
		Spec: config.ParticleSpec{Type: "Photon", Pz: 5},
		Runs: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Primary) != 0 {
		t.Errorf("expected no decays, got %v", res.Primary)
	}
	if res.Converged != 3 {
		t.Errorf("expected stable runs to count as converged, got %d", res.Converged)
	}
	if diff := cmp.Diff([]float64{5, 5, 5}, res.LeafEnergies); diff != "" {
		t.Errorf("leaf energies (-want +got):\n%s", diff)
	}
}

func TestRun_SharedRecorder(t *testing.T) {
	rec := metrics.NewRecorder()
	p := zParams(12)
	p.Options = append(p.Options, particle.WithRecorder(rec))
	if _, err := Run(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if got := rec.DecayCount("ZBoson"); got != 12 {
		t.Errorf("expected 12 recorded Z decays, got %v", got)
	}
}

func TestRun_Errors(t *testing.T) {
	if _, err := Run(context.Background(), zParams(0)); !errors.Is(err, ErrNoRuns) {
		t.Errorf("expected ErrNoRuns, got %v", err)
	}

	bad := zParams(2)
	bad.Spec = config.ParticleSpec{Type: "Graviton"}
	if _, err := Run(context.Background(), bad); err == nil {
		t.Error("expected build error for unknown type")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, zParams(8)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
