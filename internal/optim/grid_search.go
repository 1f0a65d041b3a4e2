package optim

import (
	"context"
	"errors"

	"github.com/san-kum/decaysim/internal/ensemble"
	"github.com/san-kum/decaysim/internal/kinematics"
	"github.com/san-kum/decaysim/internal/particle"
)

var ErrEmptyGrid = errors.New("optim: grid has no points")

// Point is one evaluated redistribution setting.
type Point struct {
	MaxIterations int
	Tolerance     float64
	Rate          float64
	Violations    int
}

// GridSearch sweeps redistribution settings and scores each by the
// ensemble convergence rate.
type GridSearch struct {
	maxIterations []int
	tolerances    []float64
	basis         kinematics.Basis
}

func NewGridSearch(maxIterations []int, tolerances []float64, basis kinematics.Basis) *GridSearch {
	return &GridSearch{maxIterations: maxIterations, tolerances: tolerances, basis: basis}
}

// Search runs one ensemble per grid point with the same seeds. The best
// point has the highest rate, then the lower iteration cap, then the
// tighter tolerance.
func (g *GridSearch) Search(ctx context.Context, base ensemble.Params) ([]Point, Point, error) {
	if len(g.maxIterations) == 0 || len(g.tolerances) == 0 {
		return nil, Point{}, ErrEmptyGrid
	}

	points := make([]Point, 0, len(g.maxIterations)*len(g.tolerances))
	var best Point
	for _, n := range g.maxIterations {
		for _, tol := range g.tolerances {
			p := base
			p.Options = append(append([]particle.Option(nil), base.Options...),
				particle.WithMaxIterations(n),
				particle.WithTolerance(tol, g.basis),
			)
			res, err := ensemble.Run(ctx, p)
			if err != nil {
				return nil, Point{}, err
			}

			pt := Point{MaxIterations: n, Tolerance: tol, Rate: res.ConvergenceRate(), Violations: res.Violations}
			points = append(points, pt)
			if len(points) == 1 || better(pt, best) {
				best = pt
			}
		}
	}
	return points, best, nil
}

func better(a, b Point) bool {
	if a.Rate != b.Rate {
		return a.Rate > b.Rate
	}
	if a.MaxIterations != b.MaxIterations {
		return a.MaxIterations < b.MaxIterations
	}
	return a.Tolerance < b.Tolerance
}
