package conservation

import (
	"fmt"
	"math"

	"github.com/san-kum/decaysim/internal/fourvec"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

// DefaultMassTolerance is the absolute MeV tolerance of the invariant-mass check.
const DefaultMassTolerance = 1e-2

// Quanta is the view of a particle the checks need.
type Quanta interface {
	Type() string
	Mass() float64
	Charge() taxonomy.Thirds
	BaryonNumber() taxonomy.Thirds
	LeptonNumbers() taxonomy.LeptonNumbers
	Momentum() fourvec.FourVector
}

type Violation struct {
	Check  string
	Parent string
	// Product is set only by per-child checks.
	Product  string
	Expected string
	Actual   string
	Message  string
}

func (v Violation) Error() string {
	if v.Product != "" {
		return fmt.Sprintf("%s: %s -> %s: %s (expected %s, got %s)",
			v.Check, v.Parent, v.Product, v.Message, v.Expected, v.Actual)
	}
	return fmt.Sprintf("%s: %s: %s (expected %s, got %s)",
		v.Check, v.Parent, v.Message, v.Expected, v.Actual)
}

type Check interface {
	Name() string
	Run(parent Quanta, children []Quanta, borrowed float64) []Violation
}

type LeptonNumber struct{}

func (LeptonNumber) Name() string { return "lepton_number" }

func (c LeptonNumber) Run(parent Quanta, children []Quanta, _ float64) []Violation {
	var sum taxonomy.LeptonNumbers
	for _, ch := range children {
		sum = sum.Add(ch.LeptonNumbers())
	}
	want := parent.LeptonNumbers()
	if sum == want {
		return nil
	}
	return []Violation{{
		Check:    c.Name(),
		Parent:   parent.Type(),
		Expected: want.String(),
		Actual:   sum.String(),
		Message:  "lepton number not conserved",
	}}
}

type BaryonNumber struct{}

func (BaryonNumber) Name() string { return "baryon_number" }

func (c BaryonNumber) Run(parent Quanta, children []Quanta, _ float64) []Violation {
	var sum taxonomy.Thirds
	for _, ch := range children {
		sum += ch.BaryonNumber()
	}
	if sum == parent.BaryonNumber() {
		return nil
	}
	return []Violation{{
		Check:    c.Name(),
		Parent:   parent.Type(),
		Expected: parent.BaryonNumber().String(),
		Actual:   sum.String(),
		Message:  "baryon number not conserved",
	}}
}

type Charge struct{}

func (Charge) Name() string { return "charge" }

func (c Charge) Run(parent Quanta, children []Quanta, _ float64) []Violation {
	var sum taxonomy.Thirds
	for _, ch := range children {
		sum += ch.Charge()
	}
	if sum == parent.Charge() {
		return nil
	}
	return []Violation{{
		Check:    c.Name(),
		Parent:   parent.Type(),
		Expected: parent.Charge().String(),
		Actual:   sum.String(),
		Message:  "charge not conserved",
	}}
}

// InvariantMass compares each child's derived mass with its rest mass.
// Decays that borrowed energy produce off-shell children and are skipped.
type InvariantMass struct {
	Tolerance float64
}

func (InvariantMass) Name() string { return "invariant_mass" }

func (c InvariantMass) Run(parent Quanta, children []Quanta, borrowed float64) []Violation {
	if borrowed != 0 {
		return nil
	}
	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultMassTolerance
	}

	var out []Violation
	for _, ch := range children {
		got := ch.Momentum().InvariantMass()
		if math.Abs(got-ch.Mass()) <= tol {
			continue
		}
		out = append(out, Violation{
			Check:    c.Name(),
			Parent:   parent.Type(),
			Product:  ch.Type(),
			Expected: fmt.Sprintf("%.4f", ch.Mass()),
			Actual:   fmt.Sprintf("%.4f", got),
			Message:  "invariant mass differs from rest mass",
		})
	}
	return out
}

type Validator struct {
	checks []Check
}

// NewValidator returns a validator running the four standard checks.
func NewValidator(massTolerance float64) *Validator {
	return &Validator{checks: []Check{
		LeptonNumber{},
		BaryonNumber{},
		Charge{},
		InvariantMass{Tolerance: massTolerance},
	}}
}

// WithChecks replaces the check set.
func (v *Validator) WithChecks(checks ...Check) *Validator {
	v.checks = checks
	return v
}

func (v *Validator) Checks() []string {
	names := make([]string, len(v.checks))
	for i, c := range v.checks {
		names[i] = c.Name()
	}
	return names
}

// Validate runs every check independently over the direct children.
func (v *Validator) Validate(parent Quanta, children []Quanta, borrowed float64) []Violation {
	var out []Violation
	for _, c := range v.checks {
		out = append(out, c.Run(parent, children, borrowed)...)
	}
	return out
}
