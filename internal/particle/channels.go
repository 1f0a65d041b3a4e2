package particle

import (
	"github.com/san-kum/decaysim/internal/taxonomy"
)

const (
	GroupLeptonic = "Leptonic"
	GroupHadronic = "Hadronic"
	GroupVirtual  = "Virtual"
	GroupPhoton   = "Photon-Photon"
)

// Channel is one enumerated decay outcome. Thresholds are cumulative and
// the last channel of a table has threshold 1.
type Channel struct {
	Label     string
	Group     string
	Threshold float64
	Build     func(parent Particle) []Particle
	// Borrowed is nil for on-shell channels.
	Borrowed func(parent Particle) float64
}

// Select returns the first channel whose threshold exceeds u.
func Select(channels []Channel, u float64) Channel {
	for _, c := range channels {
		if u < c.Threshold {
			return c
		}
	}
	return channels[len(channels)-1]
}

// ChannelsFor returns the decay table for p, or nil for stable particles.
func ChannelsFor(p Particle) []Channel {
	switch p.(type) {
	case *Tau:
		return tauChannels
	case *WBoson:
		return wChannels
	case *ZBoson:
		return zChannels
	case *Higgs:
		return higgsChannels
	}
	return nil
}

func must[T Particle](p T, err error) Particle {
	if err != nil {
		panic(err)
	}
	return p
}

// lepton builds a charged lepton or neutrino at rest. Electrons start with
// a single deposit equal to their rest mass.
func lepton(s taxonomy.Species, anti bool) Particle {
	switch s {
	case taxonomy.Electron:
		return must(NewElectron(0, 0, 0, []float64{taxonomy.ElectronMass, 0, 0, 0}, anti))
	case taxonomy.Muon:
		return must(NewMuon(0, 0, 0, false, anti))
	case taxonomy.Tau:
		return must(NewTau(0, 0, 0, anti))
	}
	return must(NewNeutrino(s, 0, 0, 0, false, anti))
}

// quark builds a quark at rest with c adjusted to its polarity.
func quark(s taxonomy.Species, c taxonomy.Colour, anti bool) Particle {
	return must(NewQuark(s, 0, 0, 0, c.ForPolarity(anti), anti))
}

func neutrinoOf(s taxonomy.Species) taxonomy.Species {
	switch s {
	case taxonomy.Muon:
		return taxonomy.MuonNeutrino
	case taxonomy.Tau:
		return taxonomy.TauNeutrino
	}
	return taxonomy.ElectronNeutrino
}

func tauLeptonic(s taxonomy.Species) func(Particle) []Particle {
	return func(p Particle) []Particle {
		a := p.IsAntiparticle()
		return []Particle{lepton(s, a), lepton(neutrinoOf(s), !a), lepton(taxonomy.TauNeutrino, a)}
	}
}

func tauHadronic(down taxonomy.Species, upColour taxonomy.Colour) func(Particle) []Particle {
	return func(p Particle) []Particle {
		a := p.IsAntiparticle()
		return []Particle{
			quark(taxonomy.Up, upColour, !a),
			quark(down, taxonomy.Red, a),
			lepton(taxonomy.TauNeutrino, a),
		}
	}
}

var tauChannels = []Channel{
	{Label: "Leptonic mu", Group: GroupLeptonic, Threshold: 0.33 / 2, Build: tauLeptonic(taxonomy.Muon)},
	{Label: "Leptonic e", Group: GroupLeptonic, Threshold: 0.33, Build: tauLeptonic(taxonomy.Electron)},
	{Label: "Hadronic u d", Group: GroupHadronic, Threshold: 0.33 + 0.67/2, Build: tauHadronic(taxonomy.Down, taxonomy.Red)},
	{Label: "Hadronic u s", Group: GroupHadronic, Threshold: 1, Build: tauHadronic(taxonomy.Strange, taxonomy.Blue)},
}

// W- is the antiparticle state: its charged lepton is a particle and its
// neutrino an antiparticle.
func wLeptonic(s taxonomy.Species) func(Particle) []Particle {
	return func(p Particle) []Particle {
		a := p.IsAntiparticle()
		if s == taxonomy.Tau {
			return []Particle{lepton(taxonomy.TauNeutrino, a), lepton(taxonomy.Tau, !a)}
		}
		return []Particle{lepton(s, !a), lepton(neutrinoOf(s), a)}
	}
}

func wHadronic(up, down taxonomy.Species, c taxonomy.Colour) func(Particle) []Particle {
	return func(p Particle) []Particle {
		a := p.IsAntiparticle()
		return []Particle{quark(up, c, a), quark(down, c, !a)}
	}
}

var wChannels = func() []Channel {
	const leptonic, hadronic = 0.33, 0.67
	out := []Channel{
		{Label: "Leptonic e", Group: GroupLeptonic, Threshold: leptonic / 3, Build: wLeptonic(taxonomy.Electron)},
		{Label: "Leptonic mu", Group: GroupLeptonic, Threshold: leptonic * 2 / 3, Build: wLeptonic(taxonomy.Muon)},
		{Label: "Leptonic tau", Group: GroupLeptonic, Threshold: leptonic, Build: wLeptonic(taxonomy.Tau)},
	}
	pairs := []struct {
		label    string
		up, down taxonomy.Species
		colour   taxonomy.Colour
	}{
		{"Hadronic u d", taxonomy.Up, taxonomy.Down, taxonomy.Green},
		{"Hadronic u s", taxonomy.Up, taxonomy.Strange, taxonomy.Green},
		{"Hadronic u b", taxonomy.Up, taxonomy.Bottom, taxonomy.Green},
		{"Hadronic c d", taxonomy.Charm, taxonomy.Down, taxonomy.Blue},
		{"Hadronic c s", taxonomy.Charm, taxonomy.Strange, taxonomy.Blue},
		{"Hadronic c b", taxonomy.Charm, taxonomy.Bottom, taxonomy.Blue},
	}
	for i, pr := range pairs {
		out = append(out, Channel{
			Label:     pr.label,
			Group:     GroupHadronic,
			Threshold: leptonic + hadronic*float64(i+1)/float64(len(pairs)),
			Build:     wHadronic(pr.up, pr.down, pr.colour),
		})
	}
	out[len(out)-1].Threshold = 1
	return out
}()

func pairOf(s taxonomy.Species) func(Particle) []Particle {
	return func(Particle) []Particle { return []Particle{lepton(s, false), lepton(s, true)} }
}

func quarkPair(s taxonomy.Species, c taxonomy.Colour) func(Particle) []Particle {
	return func(Particle) []Particle { return []Particle{quark(s, c, false), quark(s, c, true)} }
}

var zChannels = func() []Channel {
	const leptonic, hadronic = 1.0 / 3, 2.0 / 3
	leptons := []struct {
		label string
		s     taxonomy.Species
	}{
		{"Leptonic e", taxonomy.Electron},
		{"Leptonic mu", taxonomy.Muon},
		{"Leptonic tau", taxonomy.Tau},
		{"Leptonic nu_e", taxonomy.ElectronNeutrino},
		{"Leptonic nu_mu", taxonomy.MuonNeutrino},
		{"Leptonic nu_tau", taxonomy.TauNeutrino},
	}
	quarks := []struct {
		label  string
		s      taxonomy.Species
		colour taxonomy.Colour
	}{
		{"Hadronic u", taxonomy.Up, taxonomy.Green},
		{"Hadronic d", taxonomy.Down, taxonomy.Red},
		{"Hadronic c", taxonomy.Charm, taxonomy.Blue},
		{"Hadronic s", taxonomy.Strange, taxonomy.Green},
		{"Hadronic b", taxonomy.Bottom, taxonomy.Red},
	}

	var out []Channel
	for i, l := range leptons {
		out = append(out, Channel{
			Label:     l.label,
			Group:     GroupLeptonic,
			Threshold: leptonic * float64(i+1) / float64(len(leptons)),
			Build:     pairOf(l.s),
		})
	}
	for i, q := range quarks {
		out = append(out, Channel{
			Label:     q.label,
			Group:     GroupHadronic,
			Threshold: leptonic + hadronic*float64(i+1)/float64(len(quarks)),
			Build:     quarkPair(q.s, q.colour),
		})
	}
	out[len(out)-1].Threshold = 1
	return out
}()

// VirtualBorrowed is the energy each of two virtual bosons of mass m
// borrows to be produced by a parent of mass parent.
func VirtualBorrowed(m, parent float64) float64 { return (2*m - parent) / 2 }

var higgsChannels = []Channel{
	{
		Label: "Virtual ZZ", Group: GroupVirtual, Threshold: 0.25,
		Build: func(p Particle) []Particle {
			b := VirtualBorrowed(taxonomy.ZMass, p.Mass())
			return []Particle{must(NewZ(0, 0, 0, b)), must(NewZ(0, 0, 0, b))}
		},
		Borrowed: func(p Particle) float64 { return VirtualBorrowed(taxonomy.ZMass, p.Mass()) },
	},
	{
		Label: "Virtual W-W+", Group: GroupVirtual, Threshold: 0.5,
		Build: func(p Particle) []Particle {
			b := VirtualBorrowed(taxonomy.WMass, p.Mass())
			return []Particle{must(NewW(-1, 0, 0, 0, b)), must(NewW(1, 0, 0, 0, b))}
		},
		Borrowed: func(p Particle) float64 { return VirtualBorrowed(taxonomy.WMass, p.Mass()) },
	},
	{
		Label: "Photon-Photon", Group: GroupPhoton, Threshold: 0.75,
		Build: func(Particle) []Particle {
			return []Particle{must(NewPhoton(0, 0, 0)), must(NewPhoton(0, 0, 0))}
		},
	},
	{
		Label: "Hadronic b", Group: GroupHadronic, Threshold: 1,
		Build: quarkPair(taxonomy.Bottom, taxonomy.Red),
	},
}
