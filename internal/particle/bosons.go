package particle

import (
	"fmt"
	"math"

	"github.com/san-kum/decaysim/internal/taxonomy"
)

type Photon struct {
	node
}

func NewPhoton(px, py, pz float64) (*Photon, error) {
	n, err := newNode(taxonomy.Photon, false, px, py, pz)
	if err != nil {
		return nil, err
	}
	return &Photon{node: n}, nil
}

func (g *Photon) Clone(withProducts bool) Particle {
	c := *g
	c.node = g.copyNode(withProducts)
	return &c
}

func (g *Photon) Decay(d *Decayer) *Report { return decayWith(d, g) }

const (
	PlanckMeVs   = 4.135667696e-21
	SpeedOfLight = 299792458.0
)

// Frequency is E/h in Hz.
func (g *Photon) Frequency() float64 { return g.p.E() / PlanckMeVs }

// Wavelength is c/f in metres, or +Inf for a photon without energy.
func (g *Photon) Wavelength() float64 {
	f := g.Frequency()
	if f == 0 {
		return math.Inf(1)
	}
	return SpeedOfLight / f
}

// WBoson carries charge +1 or -1. W- is the antiparticle state.
type WBoson struct {
	node
}

// NewW builds a W. A non-zero borrowed energy marks it virtual.
func NewW(charge int, px, py, pz, borrowed float64) (*WBoson, error) {
	if charge != 1 && charge != -1 {
		return nil, fmt.Errorf("charge %d: %w", charge, ErrInvalidCharge)
	}
	n, err := newNode(taxonomy.W, charge < 0, px, py, pz)
	if err != nil {
		return nil, err
	}
	n.borrowed = borrowed
	return &WBoson{node: n}, nil
}

func (w *WBoson) Virtual() bool { return w.borrowed != 0 }

func (w *WBoson) Clone(withProducts bool) Particle {
	c := *w
	c.node = w.copyNode(withProducts)
	return &c
}

func (w *WBoson) Decay(d *Decayer) *Report { return decayWith(d, w) }

type ZBoson struct {
	node
}

func NewZ(px, py, pz, borrowed float64) (*ZBoson, error) {
	n, err := newNode(taxonomy.Z, false, px, py, pz)
	if err != nil {
		return nil, err
	}
	n.borrowed = borrowed
	return &ZBoson{node: n}, nil
}

func (z *ZBoson) Virtual() bool { return z.borrowed != 0 }

func (z *ZBoson) Clone(withProducts bool) Particle {
	c := *z
	c.node = z.copyNode(withProducts)
	return &c
}

func (z *ZBoson) Decay(d *Decayer) *Report { return decayWith(d, z) }

type Higgs struct {
	node
}

func NewHiggs(px, py, pz float64) (*Higgs, error) {
	n, err := newNode(taxonomy.Higgs, false, px, py, pz)
	if err != nil {
		return nil, err
	}
	return &Higgs{node: n}, nil
}

func (h *Higgs) Clone(withProducts bool) Particle {
	c := *h
	c.node = h.copyNode(withProducts)
	return &c
}

func (h *Higgs) Decay(d *Decayer) *Report { return decayWith(d, h) }

// Gluon holds one colour and one anticolour, in that order.
type Gluon struct {
	node
	colour, anticolour taxonomy.Colour
}

func NewGluon(colour, anticolour taxonomy.Colour, px, py, pz float64) (*Gluon, error) {
	if !colour.IsColour() || !anticolour.IsAnticolour() {
		return nil, fmt.Errorf("(%s, %s): %w", colour, anticolour, ErrInvalidColourPair)
	}
	n, err := newNode(taxonomy.Gluon, false, px, py, pz)
	if err != nil {
		return nil, err
	}
	return &Gluon{node: n, colour: colour, anticolour: anticolour}, nil
}

func (g *Gluon) Colours() (taxonomy.Colour, taxonomy.Colour) { return g.colour, g.anticolour }

func (g *Gluon) Clone(withProducts bool) Particle {
	c := *g
	c.node = g.copyNode(withProducts)
	return &c
}

func (g *Gluon) Decay(d *Decayer) *Report { return decayWith(d, g) }
