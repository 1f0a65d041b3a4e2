// Package ensemble decays many independent copies of one particle in
// parallel and aggregates the outcomes.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/decaysim/internal/analysis"
	"github.com/san-kum/decaysim/internal/catalogue"
	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/particle"
)

var ErrNoRuns = errors.New("ensemble: run count must be positive")

type Params struct {
	// Spec describes the particle built fresh for every run.
	Spec      config.ParticleSpec
	Runs      int
	SeedStart int64
	// Workers bounds concurrency. Zero uses GOMAXPROCS.
	Workers int
	// Options are applied to every run's decayer before its seed.
	Options []particle.Option
}

type Result struct {
	Runs int
	// Primary counts the channel drawn by each root.
	Primary map[string]int
	// Channels counts every decay in the trees, keyed "type: channel".
	Channels     map[string]int
	Converged    int
	Violations   int
	LeafEnergies []float64
}

func (r *Result) ConvergenceRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Converged) / float64(r.Runs)
}

type outcome struct {
	report *particle.Report
	leaves []float64
}

// Run decays p.Runs particles, run i seeded with SeedStart+i. Each tree
// and its decayer stay on the goroutine that built them.
func Run(ctx context.Context, p Params) (*Result, error) {
	if p.Runs <= 0 {
		return nil, ErrNoRuns
	}
	if _, err := catalogue.Build(p.Spec); err != nil {
		return nil, fmt.Errorf("ensemble: build %s: %w", p.Spec.Type, err)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]outcome, p.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Runs; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			root, err := catalogue.Build(p.Spec)
			if err != nil {
				return err
			}
			opts := append(append([]particle.Option(nil), p.Options...), particle.WithSeed(p.SeedStart+int64(i)))
			d := particle.NewDecayer(opts...)
			outcomes[i] = outcome{
				report: d.Decay(root),
				leaves: analysis.LeafEnergies(root),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Runs: p.Runs, Primary: make(map[string]int)}
	reports := make([]*particle.Report, 0, p.Runs)
	for _, o := range outcomes {
		reports = append(reports, o.report)
		if !o.report.Stable {
			res.Primary[o.report.Channel]++
		}
		if o.report.Converged() {
			res.Converged++
		}
		res.Violations += len(o.report.AllViolations())
		res.LeafEnergies = append(res.LeafEnergies, o.leaves...)
	}
	res.Channels = analysis.ChannelFrequencies(reports)
	return res, nil
}
