package catalogue

import (
	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/particle"
)

type SeedResult struct {
	Added    int
	Rejected []error
	Reports  []*particle.Report
}

// Seed builds every spec into c and decays the ones flagged for decay.
// Specs that fail to construct are skipped and listed in Rejected.
func (c *Catalogue) Seed(d *particle.Decayer, specs []config.ParticleSpec) SeedResult {
	var res SeedResult
	for _, spec := range specs {
		spec := spec
		p, err := c.CreateNamed(spec.Name, func() (particle.Particle, error) { return Build(spec) })
		if err != nil {
			res.Rejected = append(res.Rejected, err)
			continue
		}
		res.Added++
		if spec.Decay {
			res.Reports = append(res.Reports, d.Decay(p))
		}
	}
	return res
}

// DefaultSeed is the reference demo roster.
func DefaultSeed() []config.ParticleSpec {
	return config.GetPreset("demo").Particles
}
