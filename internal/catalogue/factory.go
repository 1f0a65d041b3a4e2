package catalogue

import (
	"fmt"

	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/particle"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

// Build constructs the particle a spec describes.
func Build(spec config.ParticleSpec) (particle.Particle, error) {
	s, anti, err := taxonomy.ParseSpecies(spec.Type)
	if err != nil {
		return nil, err
	}
	px, py, pz := spec.Px, spec.Py, spec.Pz

	switch s {
	case taxonomy.Electron:
		return wrap(particle.NewElectron(px, py, pz, spec.Deposits, anti))
	case taxonomy.Muon:
		return wrap(particle.NewMuon(px, py, pz, spec.Isolated, anti))
	case taxonomy.Tau:
		return wrap(particle.NewTau(px, py, pz, anti))
	case taxonomy.ElectronNeutrino, taxonomy.MuonNeutrino, taxonomy.TauNeutrino:
		return wrap(particle.NewNeutrino(s, px, py, pz, spec.Interacted, anti))
	case taxonomy.Photon:
		return wrap(particle.NewPhoton(px, py, pz))
	case taxonomy.W:
		charge := 1
		if anti {
			charge = -1
		}
		return wrap(particle.NewW(charge, px, py, pz, spec.Borrowed))
	case taxonomy.Z:
		return wrap(particle.NewZ(px, py, pz, spec.Borrowed))
	case taxonomy.Higgs:
		return wrap(particle.NewHiggs(px, py, pz))
	case taxonomy.Gluon:
		c1, err := colourOr(spec.Colour, taxonomy.Red)
		if err != nil {
			return nil, err
		}
		c2, err := colourOr(spec.Anticolour, c1.Anti())
		if err != nil {
			return nil, err
		}
		return wrap(particle.NewGluon(c1, c2, px, py, pz))
	}

	if taxonomy.Info(s).Family == taxonomy.Quark {
		c, err := colourOr(spec.Colour, taxonomy.Red.ForPolarity(anti))
		if err != nil {
			return nil, err
		}
		return wrap(particle.NewQuark(s, px, py, pz, c, anti))
	}
	return nil, fmt.Errorf("catalogue: no constructor for %s", s)
}

// wrap turns a typed constructor result into a Particle without keeping a
// typed nil pointer on failure.
func wrap[T particle.Particle](p T, err error) (particle.Particle, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

func colourOr(name string, fallback taxonomy.Colour) (taxonomy.Colour, error) {
	if name == "" {
		return fallback, nil
	}
	return taxonomy.ParseColour(name)
}
