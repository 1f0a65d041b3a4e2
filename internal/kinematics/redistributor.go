package kinematics

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/decaysim/internal/fourvec"
)

const (
	DefaultMaxIterations = 5_000_000
	DefaultTolerance     = 1e-3
)

// Body is a decay product whose momentum the redistributor may overwrite.
type Body interface {
	DecayMass() float64
	Momentum() fourvec.FourVector
	SetMomentum(fourvec.FourVector)
}

// Basis selects the energy the relative tolerance is scaled by.
type Basis int

const (
	// TargetBasis scales tolerance by the parent energy.
	TargetBasis Basis = iota
	// AssignedBasis scales tolerance by the summed assigned energy of the
	// current iteration.
	AssignedBasis
)

func (b Basis) String() string {
	if b == AssignedBasis {
		return "assigned"
	}
	return "target"
}

func ParseBasis(s string) Basis {
	if s == "assigned" {
		return AssignedBasis
	}
	return TargetBasis
}

type Result struct {
	Converged  bool
	Iterations int
	// Total is the summed four-momentum of the final assignment.
	Total fourvec.FourVector
}

type Redistributor struct {
	MaxIterations int
	Tolerance     float64
	Basis         Basis
	rng           *rand.Rand
}

func NewRedistributor(seed int64) *Redistributor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Redistributor{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Basis:         TargetBasis,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// WithRand shares r with the caller; both must stay on one goroutine.
func (r *Redistributor) WithRand(rng *rand.Rand) *Redistributor {
	r.rng = rng
	return r
}

// Distribute mutates every body's momentum so the set sums to parent.
// Masses are reduced by borrowed for off-shell products.
func (r *Redistributor) Distribute(bodies []Body, parent fourvec.FourVector, borrowed float64) Result {
	n := len(bodies)
	if n == 0 {
		return Result{}
	}

	maxIter := r.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	masses := make([]float64, n)
	for i, b := range bodies {
		masses[i] = b.DecayMass() - borrowed
	}

	totalEnergy := parent.E()
	initPx, initPy, initPz := parent.P3()

	var total fourvec.FourVector
	for iter := 0; iter < maxIter; iter++ {
		remainingE := totalEnergy
		remPx, remPy, remPz := initPx, initPy, initPz

		for i, b := range bodies {
			m := masses[i]
			var e, px, py, pz float64

			if i == n-1 {
				px, py, pz = remPx, remPy, remPz
				e = math.Sqrt(px*px + py*py + pz*pz + m*m)
			} else {
				if iter == 0 || r.rng.Float64() < 0.5 {
					e, px, py, pz = r.explore(remainingE/float64(n), m)
				} else {
					px, py, pz = r.refine(b.Momentum())
					e = math.Sqrt(px*px + py*py + pz*pz + m*m)
				}
				remPx -= px
				remPy -= py
				remPz -= pz
			}

			v := fourvec.Zero()
			v.SetEnergy(e)
			v.SetPx(px)
			v.SetPy(py)
			v.SetPz(pz)
			b.SetMomentum(v)
			remainingE -= e
		}

		var ok bool
		total, ok = r.conserved(bodies, parent)
		if ok {
			return Result{Converged: true, Iterations: iter + 1, Total: total}
		}
	}

	return Result{Converged: false, Iterations: maxIter, Total: total}
}

// explore samples an isotropic direction for a body of mass m carrying
// energy e. The momentum magnitude is clamped at zero below threshold.
func (r *Redistributor) explore(e, m float64) (float64, float64, float64, float64) {
	phi := 2 * math.Pi * r.rng.Float64()
	theta := math.Pi * r.rng.Float64()
	p := math.Sqrt(math.Max(e*e-m*m, 0))
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	return e, p * sinT * cosP, p * sinT * sinP, p * cosT
}

func (r *Redistributor) refine(cur fourvec.FourVector) (float64, float64, float64) {
	jitter := func() float64 { return 1 + r.rng.Float64()*0.1 - 0.05 }
	return cur.Px() * jitter(), cur.Py() * jitter(), cur.Pz() * jitter()
}

func (r *Redistributor) conserved(bodies []Body, parent fourvec.FourVector) (fourvec.FourVector, bool) {
	total := fourvec.Zero()
	for _, b := range bodies {
		total = total.Add(b.Momentum())
	}
	return total, Within(total, parent, r.Tolerance, r.Basis)
}

// Within reports whether total matches target component-wise inside
// tol times the basis energy.
func Within(total, target fourvec.FourVector, tol float64, basis Basis) bool {
	scale := target.E()
	if basis == AssignedBasis {
		scale = total.E()
	}
	limit := math.Abs(scale) * tol
	return math.Abs(total.E()-target.E()) < limit &&
		math.Abs(total.Px()-target.Px()) < limit &&
		math.Abs(total.Py()-target.Py()) < limit &&
		math.Abs(total.Pz()-target.Pz()) < limit
}
