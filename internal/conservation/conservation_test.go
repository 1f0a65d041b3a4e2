package conservation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/decaysim/internal/fourvec"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

type quanta struct {
	typ    string
	mass   float64
	charge taxonomy.Thirds
	baryon taxonomy.Thirds
	lepton taxonomy.LeptonNumbers
	p      fourvec.FourVector
}

func (q quanta) Type() string                          { return q.typ }
func (q quanta) Mass() float64                         { return q.mass }
func (q quanta) Charge() taxonomy.Thirds               { return q.charge }
func (q quanta) BaryonNumber() taxonomy.Thirds         { return q.baryon }
func (q quanta) LeptonNumbers() taxonomy.LeptonNumbers { return q.lepton }
func (q quanta) Momentum() fourvec.FourVector          { return q.p }

func wMinusDecay() (Quanta, []Quanta) {
	parent := quanta{typ: "W-", mass: taxonomy.WMass, charge: -taxonomy.One,
		p: fourvec.MustNew(taxonomy.WMass, 0, 0, 0)}
	e := quanta{typ: "Electron", mass: taxonomy.ElectronMass, charge: -taxonomy.One,
		lepton: taxonomy.LeptonNumbers{Electron: 1}}
	nu := quanta{typ: "AntiElectronNeutrino", lepton: taxonomy.LeptonNumbers{Electron: -1}}
	e.p, _ = fourvec.OnShell(e.mass, 0, 0, 40000)
	nu.p, _ = fourvec.OnShell(0, 0, 0, -40000)
	return parent, []Quanta{e, nu}
}

func TestValidate_CleanDecay(t *testing.T) {
	parent, children := wMinusDecay()
	v := NewValidator(DefaultMassTolerance)

	assert.Empty(t, v.Validate(parent, children, 0))
	assert.Equal(t, []string{"lepton_number", "baryon_number", "charge", "invariant_mass"}, v.Checks())
}

func TestLeptonNumber_WrongNeutrino(t *testing.T) {
	parent, children := wMinusDecay()
	nu := children[1].(quanta)
	nu.lepton = taxonomy.LeptonNumbers{Electron: 1}
	children[1] = nu

	got := LeptonNumber{}.Run(parent, children, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "lepton_number", got[0].Check)
	assert.Equal(t, "(e=2, mu=0, tau=0)", got[0].Actual)
}

func TestCharge_ExactThirds(t *testing.T) {
	parent := quanta{typ: "W+", charge: taxonomy.One}
	u := quanta{typ: "UpQuark", charge: taxonomy.TwoThird, baryon: taxonomy.OneThird}
	dbar := quanta{typ: "AntiDownQuark", charge: taxonomy.OneThird, baryon: -taxonomy.OneThird}

	assert.Empty(t, Charge{}.Run(parent, []Quanta{u, dbar}, 0))
	assert.Empty(t, BaryonNumber{}.Run(parent, []Quanta{u, dbar}, 0))

	got := Charge{}.Run(parent, []Quanta{u, u}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "4/3", got[0].Actual)
	assert.Equal(t, "1", got[0].Expected)

	got = BaryonNumber{}.Run(parent, []Quanta{u, u}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "2/3", got[0].Actual)
}

func TestInvariantMass_SkippedWhenBorrowed(t *testing.T) {
	parent := quanta{typ: "HiggsBoson"}
	z := quanta{typ: "ZBoson", mass: taxonomy.ZMass, p: fourvec.MustNew(62555, 0, 0, 0)}

	assert.Len(t, InvariantMass{}.Run(parent, []Quanta{z}, 0), 1)
	assert.Empty(t, InvariantMass{}.Run(parent, []Quanta{z}, 28632.6))
}

func TestViolation_Error(t *testing.T) {
	v := Violation{Check: "invariant_mass", Parent: "Tau", Product: "Muon",
		Expected: "105.6600", Actual: "100.0000", Message: "invariant mass differs from rest mass"}
	msg := v.Error()
	assert.True(t, strings.HasPrefix(msg, "invariant_mass: Tau -> Muon"))
	assert.Contains(t, msg, "expected 105.6600")
}

func TestValidator_ChecksIndependent(t *testing.T) {
	parent := quanta{typ: "ZBoson"}
	bad := quanta{typ: "Electron", mass: taxonomy.ElectronMass, charge: -taxonomy.One,
		lepton: taxonomy.LeptonNumbers{Electron: 1}, p: fourvec.MustNew(10, 0, 0, 0)}

	got := NewValidator(0).Validate(parent, []Quanta{bad}, 0)
	checks := make([]string, 0, len(got))
	for _, v := range got {
		checks = append(checks, v.Check)
	}
	assert.Equal(t, []string{"lepton_number", "charge", "invariant_mass"}, checks)
}
