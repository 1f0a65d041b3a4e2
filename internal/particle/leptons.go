package particle

import (
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/decaysim/internal/taxonomy"
)

// DepositTolerance is the MeV mismatch above which electron deposits are
// rescaled to the electron energy.
const DepositTolerance = 0.05

type Electron struct {
	node
	deposits []float64
}

// NewElectron builds an on-shell electron and reconciles its calorimeter
// deposits with its energy.
func NewElectron(px, py, pz float64, deposits []float64, anti bool) (*Electron, error) {
	n, err := newNode(taxonomy.Electron, anti, px, py, pz)
	if err != nil {
		return nil, err
	}
	e := &Electron{node: n, deposits: slices.Clone(deposits)}
	e.AdjustDeposits()
	return e, nil
}

func (e *Electron) Deposits() []float64 { return slices.Clone(e.deposits) }

// AdjustDeposits rescales the deposits so they sum to the current energy.
// Deposits summing to zero are replaced by an equal split.
func (e *Electron) AdjustDeposits() bool {
	if len(e.deposits) == 0 {
		return false
	}
	var total float64
	for _, d := range e.deposits {
		total += d
	}
	energy := e.p.E()
	if math.Abs(total-energy) <= DepositTolerance {
		return false
	}

	e.notice(NoticeDepositsRescaled, "deposits sum to %.3f MeV instead of %.3f MeV", total, energy)
	if total == 0 {
		share := energy / float64(len(e.deposits))
		for i := range e.deposits {
			e.deposits[i] = share
		}
		return true
	}
	scale := energy / total
	for i := range e.deposits {
		e.deposits[i] *= scale
	}
	return true
}

func (e *Electron) Clone(withProducts bool) Particle {
	c := *e
	c.node = e.copyNode(withProducts)
	c.deposits = slices.Clone(e.deposits)
	return &c
}

func (e *Electron) Decay(d *Decayer) *Report { return decayWith(d, e) }

type Muon struct {
	node
	isolated bool
}

func NewMuon(px, py, pz float64, isolated, anti bool) (*Muon, error) {
	n, err := newNode(taxonomy.Muon, anti, px, py, pz)
	if err != nil {
		return nil, err
	}
	return &Muon{node: n, isolated: isolated}, nil
}

func (m *Muon) Isolated() bool { return m.isolated }

func (m *Muon) Clone(withProducts bool) Particle {
	c := *m
	c.node = m.copyNode(withProducts)
	return &c
}

func (m *Muon) Decay(d *Decayer) *Report { return decayWith(d, m) }

type Tau struct {
	node
}

func NewTau(px, py, pz float64, anti bool) (*Tau, error) {
	n, err := newNode(taxonomy.Tau, anti, px, py, pz)
	if err != nil {
		return nil, err
	}
	return &Tau{node: n}, nil
}

func (t *Tau) Clone(withProducts bool) Particle {
	c := *t
	c.node = t.copyNode(withProducts)
	return &c
}

func (t *Tau) Decay(d *Decayer) *Report { return decayWith(d, t) }

// Neutrino covers the three neutrino flavours.
type Neutrino struct {
	node
	interacted bool
}

func NewNeutrino(flavour taxonomy.Species, px, py, pz float64, interacted, anti bool) (*Neutrino, error) {
	switch flavour {
	case taxonomy.ElectronNeutrino, taxonomy.MuonNeutrino, taxonomy.TauNeutrino:
	default:
		return nil, fmt.Errorf("%s is not a neutrino: %w", flavour, ErrInvalidFlavour)
	}
	n, err := newNode(flavour, anti, px, py, pz)
	if err != nil {
		return nil, err
	}
	return &Neutrino{node: n, interacted: interacted}, nil
}

func (n *Neutrino) Flavour() taxonomy.Species { return n.species }

func (n *Neutrino) Interacted() bool { return n.interacted }

func (n *Neutrino) Clone(withProducts bool) Particle {
	c := *n
	c.node = n.copyNode(withProducts)
	return &c
}

func (n *Neutrino) Decay(d *Decayer) *Report { return decayWith(d, n) }
