package fourvec

import (
	"fmt"
	"math"
)

// MaxComponent bounds the magnitude of each spatial component.
const MaxComponent = 1e10

type FourVector struct {
	e, px, py, pz float64
}

// New validates the spatial components and returns the vector.
func New(e, px, py, pz float64) (FourVector, error) {
	for _, c := range []struct {
		name string
		v    float64
	}{{"px", px}, {"py", py}, {"pz", pz}} {
		if math.Abs(c.v) > MaxComponent {
			return FourVector{}, &OutOfRangeError{Component: c.name, Value: c.v}
		}
	}
	return FourVector{e: e, px: px, py: py, pz: pz}, nil
}

// MustNew is New for literals known to be in range.
func MustNew(e, px, py, pz float64) FourVector {
	v, err := New(e, px, py, pz)
	if err != nil {
		panic(err)
	}
	return v
}

func Zero() FourVector { return FourVector{} }

// OnShell returns the vector with momentum p and energy sqrt(|p|^2+m^2).
func OnShell(mass, px, py, pz float64) (FourVector, error) {
	return New(math.Sqrt(px*px+py*py+pz*pz+mass*mass), px, py, pz)
}

func (v FourVector) E() float64  { return v.e }
func (v FourVector) Px() float64 { return v.px }
func (v FourVector) Py() float64 { return v.py }
func (v FourVector) Pz() float64 { return v.pz }

func (v FourVector) P3() (px, py, pz float64) {
	return v.px, v.py, v.pz
}

// P returns the magnitude of the 3-momentum.
func (v FourVector) P() float64 {
	return math.Sqrt(v.px*v.px + v.py*v.py + v.pz*v.pz)
}

// SetEnergy stores e, clamping negative input to zero.
func (v *FourVector) SetEnergy(e float64) {
	if e < 0 {
		e = 0
	}
	v.e = e
}

func (v *FourVector) SetPx(px float64) { v.px = px }
func (v *FourVector) SetPy(py float64) { v.py = py }
func (v *FourVector) SetPz(pz float64) { v.pz = pz }

func (v FourVector) Add(other FourVector) FourVector {
	return FourVector{
		e:  v.e + other.e,
		px: v.px + other.px,
		py: v.py + other.py,
		pz: v.pz + other.pz,
	}
}

func (v FourVector) Sub(other FourVector) FourVector {
	return FourVector{
		e:  v.e - other.e,
		px: v.px - other.px,
		py: v.py - other.py,
		pz: v.pz - other.pz,
	}
}

// Dot is the Minkowski product with metric signature (+,-,-,-).
func Dot(a, b FourVector) float64 {
	return a.e*b.e - (a.px*b.px + a.py*b.py + a.pz*b.pz)
}

// InvariantMass never returns a negative or NaN value for finite input.
func (v FourVector) InvariantMass() float64 {
	m2 := Dot(v, v)
	if m2 < 0 {
		return 0
	}
	return math.Sqrt(m2)
}

func (v FourVector) IsValid() bool {
	for _, c := range [...]float64{v.e, v.px, v.py, v.pz} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Sum adds all vectors, starting from zero.
func Sum(vs ...FourVector) FourVector {
	total := Zero()
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}

func (v FourVector) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", v.e, v.px, v.py, v.pz)
}
