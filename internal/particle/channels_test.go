package particle

import (
	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/decaysim/internal/conservation"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

func quantaOf(ps []Particle) []conservation.Quanta {
	out := make([]conservation.Quanta, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

var _ = g.Describe("channel tables", func() {
	tables := map[string][]Channel{
		"tau":   tauChannels,
		"w":     wChannels,
		"z":     zChannels,
		"higgs": higgsChannels,
	}

	g.It("has increasing thresholds ending at one", func() {
		for name, ch := range tables {
			prev := 0.0
			for _, c := range ch {
				Expect(c.Threshold).To(BeNumerically(">", prev), name+" "+c.Label)
				prev = c.Threshold
			}
			Expect(prev).To(Equal(1.0), name)
		}
	})

	g.It("selects by inverse CDF", func() {
		Expect(Select(tauChannels, 0).Label).To(Equal("Leptonic mu"))
		Expect(Select(tauChannels, 0.2).Label).To(Equal("Leptonic e"))
		Expect(Select(tauChannels, 0.5).Label).To(Equal("Hadronic u d"))
		Expect(Select(tauChannels, 0.9999).Label).To(Equal("Hadronic u s"))
		Expect(Select(higgsChannels, 0.25).Label).To(Equal("Virtual W-W+"))
		Expect(Select(zChannels, 0.34).Group).To(Equal(GroupHadronic))
		Expect(Select(wChannels, 0.32).Label).To(Equal("Leptonic tau"))
	})

	g.It("builds W- products summing to charge -1 for every channel", func() {
		wm, _ := NewW(-1, 0, 0, 0, 0)
		for _, c := range wChannels {
			Expect(chargeOf(c.Build(wm))).To(Equal(-taxonomy.One), c.Label)
		}
		wp, _ := NewW(1, 0, 0, 0, 0)
		for _, c := range wChannels {
			Expect(chargeOf(c.Build(wp))).To(Equal(taxonomy.One), c.Label)
		}
	})

	g.It("pairs W- with an electron and an electron antineutrino", func() {
		wm, _ := NewW(-1, 0, 0, 0, 0)
		ps := wChannels[0].Build(wm)
		Expect(ps[0].Type()).To(Equal("Electron"))
		Expect(ps[1].Type()).To(Equal("AntiElectronNeutrino"))
	})

	g.It("conserves quantum numbers in every channel of every parent", func() {
		v := conservation.NewValidator(0).WithChecks(
			conservation.LeptonNumber{}, conservation.BaryonNumber{}, conservation.Charge{})
		tau, _ := NewTau(0, 0, 0, false)
		antiTau, _ := NewTau(0, 0, 0, true)
		wm, _ := NewW(-1, 0, 0, 0, 0)
		wp, _ := NewW(1, 0, 0, 0, 0)
		z, _ := NewZ(0, 0, 0, 0)
		h, _ := NewHiggs(0, 0, 0)

		for _, parent := range []Particle{tau, antiTau, wm, wp, z, h} {
			for _, c := range ChannelsFor(parent) {
				got := v.Validate(parent, quantaOf(c.Build(parent)), 0)
				Expect(got).To(BeEmpty(), parent.Type()+" "+c.Label)
			}
		}
	})

	g.It("keeps hadronic pairs colour consistent", func() {
		z, _ := NewZ(0, 0, 0, 0)
		wp, _ := NewW(1, 0, 0, 0, 0)
		for _, parent := range []Particle{z, wp} {
			for _, c := range ChannelsFor(parent) {
				if c.Group != GroupHadronic {
					continue
				}
				ps := c.Build(parent)
				q0, q1 := ps[0].(*Quark), ps[1].(*Quark)
				Expect(q1.Colour()).To(Equal(q0.Colour().Anti()), c.Label)
				Expect(q0.Notices()).To(BeEmpty())
				Expect(q1.Notices()).To(BeEmpty())
			}
		}
	})

	g.It("borrows energy for virtual Higgs channels", func() {
		h, _ := NewHiggs(0, 0, 0)
		zz := higgsChannels[0]
		Expect(zz.Borrowed(h)).To(BeNumerically("~", (2*taxonomy.ZMass-taxonomy.HiggsMass)/2, 1e-9))
		for _, p := range zz.Build(h) {
			Expect(p.BorrowedEnergy()).To(Equal(zz.Borrowed(h)))
		}
		Expect(higgsChannels[2].Borrowed).To(BeNil())
	})

	g.It("has no channels for stable particles", func() {
		e, _ := NewElectron(0, 0, 0, nil, false)
		Expect(ChannelsFor(e)).To(BeNil())
	})
})
