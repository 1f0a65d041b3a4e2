package taxonomy

import (
	"fmt"

	"golang.org/x/text/cases"
)

type Species int

const (
	Electron Species = iota
	Muon
	Tau
	ElectronNeutrino
	MuonNeutrino
	TauNeutrino
	Up
	Down
	Charm
	Strange
	Top
	Bottom
	Photon
	W
	Z
	Higgs
	Gluon
)

type Family int

const (
	Lepton Family = iota
	Quark
	Boson
)

func (f Family) String() string {
	switch f {
	case Lepton:
		return "lepton"
	case Quark:
		return "quark"
	}
	return "boson"
}

// LeptonNumbers holds the per-flavour lepton numbers.
type LeptonNumbers struct {
	Electron int
	Muon     int
	Tau      int
}

func (l LeptonNumbers) Add(o LeptonNumbers) LeptonNumbers {
	return LeptonNumbers{l.Electron + o.Electron, l.Muon + o.Muon, l.Tau + o.Tau}
}

func (l LeptonNumbers) Negate() LeptonNumbers {
	return LeptonNumbers{-l.Electron, -l.Muon, -l.Tau}
}

func (l LeptonNumbers) String() string {
	return fmt.Sprintf("(e=%d, mu=%d, tau=%d)", l.Electron, l.Muon, l.Tau)
}

// Properties are the constant quantum numbers of the particle state.
// Antiparticle values come from For(true).
type Properties struct {
	Name   string
	Mass   float64 // MeV/c^2
	Charge Thirds
	Spin   float64
	Baryon Thirds
	Lepton LeptonNumbers
	Family Family
}

func (p Properties) For(anti bool) Properties {
	if !anti {
		return p
	}
	p.Charge = p.Charge.Neg()
	p.Baryon = p.Baryon.Neg()
	p.Lepton = p.Lepton.Negate()
	return p
}

const (
	ElectronMass = 0.511
	MuonMass     = 105.66
	TauMass      = 1776.86
	UpMass       = 2.2
	DownMass     = 4.7
	CharmMass    = 1280
	StrangeMass  = 95
	TopMass      = 173100
	BottomMass   = 4180
	WMass        = 80377
	ZMass        = 91187.6
	HiggsMass    = 125110
)

var table = map[Species]Properties{
	Electron:         {Name: "Electron", Mass: ElectronMass, Charge: -One, Spin: 0.5, Lepton: LeptonNumbers{Electron: 1}, Family: Lepton},
	Muon:             {Name: "Muon", Mass: MuonMass, Charge: -One, Spin: 0.5, Lepton: LeptonNumbers{Muon: 1}, Family: Lepton},
	Tau:              {Name: "Tau", Mass: TauMass, Charge: -One, Spin: 0.5, Lepton: LeptonNumbers{Tau: 1}, Family: Lepton},
	ElectronNeutrino: {Name: "ElectronNeutrino", Spin: 0.5, Lepton: LeptonNumbers{Electron: 1}, Family: Lepton},
	MuonNeutrino:     {Name: "MuonNeutrino", Spin: 0.5, Lepton: LeptonNumbers{Muon: 1}, Family: Lepton},
	TauNeutrino:      {Name: "TauNeutrino", Spin: 0.5, Lepton: LeptonNumbers{Tau: 1}, Family: Lepton},
	Up:               {Name: "UpQuark", Mass: UpMass, Charge: TwoThird, Spin: 0.5, Baryon: OneThird, Family: Quark},
	Down:             {Name: "DownQuark", Mass: DownMass, Charge: -OneThird, Spin: 0.5, Baryon: OneThird, Family: Quark},
	Charm:            {Name: "CharmQuark", Mass: CharmMass, Charge: TwoThird, Spin: 0.5, Baryon: OneThird, Family: Quark},
	Strange:          {Name: "StrangeQuark", Mass: StrangeMass, Charge: -OneThird, Spin: 0.5, Baryon: OneThird, Family: Quark},
	Top:              {Name: "TopQuark", Mass: TopMass, Charge: TwoThird, Spin: 0.5, Baryon: OneThird, Family: Quark},
	Bottom:           {Name: "BottomQuark", Mass: BottomMass, Charge: -OneThird, Spin: 0.5, Baryon: OneThird, Family: Quark},
	Photon:           {Name: "Photon", Spin: 1, Family: Boson},
	W:                {Name: "W", Mass: WMass, Charge: One, Spin: 1, Family: Boson},
	Z:                {Name: "ZBoson", Mass: ZMass, Spin: 1, Family: Boson},
	Higgs:            {Name: "HiggsBoson", Mass: HiggsMass, Spin: 0, Family: Boson},
	Gluon:            {Name: "Gluon", Spin: 1, Family: Boson},
}

// Info returns the particle-state properties of s. W is listed as W+.
func Info(s Species) Properties {
	p, ok := table[s]
	if !ok {
		panic(fmt.Sprintf("taxonomy: unknown species %d", int(s)))
	}
	return p
}

// Massive reports whether the species requires a positive rest mass.
func Massive(s Species) bool {
	switch s {
	case ElectronNeutrino, MuonNeutrino, TauNeutrino, Photon, Gluon:
		return false
	}
	return true
}

// Unstable lists the species with decay channels.
func Unstable(s Species) bool {
	switch s {
	case Tau, W, Z, Higgs:
		return true
	}
	return false
}

func (s Species) String() string { return Info(s).Name }

// TypeName is the catalogue type tag for a particle state.
func TypeName(s Species, anti bool, charge Thirds) string {
	switch s {
	case W:
		if charge > 0 {
			return "W+"
		}
		return "W-"
	case Photon, Z, Higgs, Gluon:
		return Info(s).Name
	}
	if anti {
		return "Anti" + Info(s).Name
	}
	return Info(s).Name
}

// All returns every species in declaration order.
func All() []Species {
	out := make([]Species, 0, len(table))
	for s := Electron; s <= Gluon; s++ {
		out = append(out, s)
	}
	return out
}

var aliases = map[string]Species{
	"e": Electron, "mu": Muon, "tau": Tau,
	"nu_e": ElectronNeutrino, "nu_mu": MuonNeutrino, "nu_tau": TauNeutrino,
	"u": Up, "d": Down, "c": Charm, "s": Strange, "t": Top, "b": Bottom,
	"up": Up, "down": Down, "charm": Charm, "strange": Strange, "top": Top, "bottom": Bottom,
	"gamma": Photon, "w+": W, "w-": W, "z": Z, "h": Higgs, "higgs": Higgs, "g": Gluon,
}

// ParseSpecies accepts species names, catalogue type tags and short aliases,
// case-insensitively. The returned anti flag is set for "Anti..." tags and
// W- (which is the antiparticle of W+ in this catalogue).
func ParseSpecies(name string) (Species, bool, error) {
	fold := cases.Fold()
	key := fold.String(name)
	if key == "w-" {
		return W, true, nil
	}
	if s, ok := aliases[key]; ok {
		return s, false, nil
	}
	for _, s := range All() {
		base := fold.String(Info(s).Name)
		switch key {
		case base:
			return s, false, nil
		case "anti" + base:
			return s, true, nil
		}
	}
	return 0, false, fmt.Errorf("taxonomy: unknown species %q", name)
}
