package particle

import (
	"math"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/decaysim/internal/fourvec"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

func chargeOf(ps []Particle) taxonomy.Thirds {
	var sum taxonomy.Thirds
	for _, p := range ps {
		sum += p.Charge()
	}
	return sum
}

var _ = g.Describe("construction", func() {
	g.DescribeTable("gluon colour pairs",
		func(c1, c2 taxonomy.Colour, ok bool) {
			gl, err := NewGluon(c1, c2, 4, 7, 2)
			if ok {
				Expect(err).NotTo(HaveOccurred())
				Expect(gl.Type()).To(Equal("Gluon"))
				return
			}
			Expect(err).To(MatchError(ErrInvalidColourPair))
		},
		g.Entry("green anti-green", taxonomy.Green, taxonomy.AntiGreen, true),
		g.Entry("red anti-blue", taxonomy.Red, taxonomy.AntiBlue, true),
		g.Entry("green green", taxonomy.Green, taxonomy.Green, false),
		g.Entry("anticolour first", taxonomy.AntiRed, taxonomy.Red, false),
		g.Entry("neutral", taxonomy.Neutral, taxonomy.AntiRed, false),
	)

	g.It("swaps a quark colour that mismatches its polarity", func() {
		q, err := NewQuark(taxonomy.Up, 1, 2, 3, taxonomy.AntiRed, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Colour()).To(Equal(taxonomy.Red))
		Expect(q.Notices()).To(HaveLen(1))
		Expect(q.Notices()[0].Kind).To(Equal(NoticeColourCorrected))

		aq, err := NewQuark(taxonomy.Down, 1, 2.46, 75, taxonomy.Blue, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(aq.Colour()).To(Equal(taxonomy.AntiBlue))
		Expect(aq.Type()).To(Equal("AntiDownQuark"))
	})

	g.It("keeps a consistent quark colour without notices", func() {
		q, err := NewQuark(taxonomy.Charm, 0, 0, 0, taxonomy.AntiRed, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Colour()).To(Equal(taxonomy.AntiRed))
		Expect(q.Notices()).To(BeEmpty())
	})

	g.It("rejects neutral quarks and non-quark flavours", func() {
		_, err := NewQuark(taxonomy.Up, 0, 0, 0, taxonomy.Neutral, false)
		Expect(err).To(MatchError(ErrInvalidColour))
		_, err = NewQuark(taxonomy.Muon, 0, 0, 0, taxonomy.Red, false)
		Expect(err).To(MatchError(ErrInvalidFlavour))
		_, err = NewNeutrino(taxonomy.Electron, 0, 0, 0, false, false)
		Expect(err).To(MatchError(ErrInvalidFlavour))
	})

	g.It("rejects out of range momentum", func() {
		_, err := NewMuon(1e13, 3.5e10, 3, true, false)
		Expect(err).To(MatchError(fourvec.ErrOutOfRange))
	})

	g.It("rejects W charges other than one", func() {
		_, err := NewW(2, 0, 0, 0, 0)
		Expect(err).To(MatchError(ErrInvalidCharge))
		wm, err := NewW(-1, 10, 76, 82, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(wm.Type()).To(Equal("W-"))
		Expect(wm.Charge()).To(Equal(-taxonomy.One))
	})

	g.It("rejects a massive species with no rest mass", func() {
		props := taxonomy.Info(taxonomy.Muon)
		props.Mass = 0
		_, err := newNodeWithMass(taxonomy.Muon, false, props, 0, 0, 0)
		Expect(err).To(MatchError(ErrNonPositiveMass))
	})

	g.It("derives on-shell energy", func() {
		m, err := NewMuon(454, 2546, 46, false, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Momentum().InvariantMass()).To(BeNumerically("~", taxonomy.MuonMass, 1e-6))
		Expect(m.Type()).To(Equal("AntiMuon"))
		Expect(m.LeptonNumbers()).To(Equal(taxonomy.LeptonNumbers{Muon: -1}))
	})

	g.Describe("electron deposits", func() {
		g.It("rescales deposits that miss the energy", func() {
			e, err := NewElectron(1, 2, 3, []float64{0.1, 0.2, 0.15, 0.05}, false)
			Expect(err).NotTo(HaveOccurred())
			var sum float64
			for _, d := range e.Deposits() {
				sum += d
			}
			Expect(sum).To(BeNumerically("~", e.Momentum().E(), 1e-9))
			Expect(e.Deposits()[1]).To(BeNumerically("~", 2*e.Deposits()[0], 1e-9))
			Expect(e.Notices()).To(HaveLen(1))
		})

		g.It("spreads energy over zero deposits", func() {
			e, err := NewElectron(0, 0, 4, []float64{0, 0}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Deposits()[0]).To(BeNumerically("~", e.Momentum().E()/2, 1e-9))
			Expect(e.Deposits()[1]).To(Equal(e.Deposits()[0]))
		})

		g.It("leaves matching deposits alone", func() {
			e, err := NewElectron(0, 0, 0, []float64{taxonomy.ElectronMass}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Notices()).To(BeEmpty())
		})
	})
})

var _ = g.Describe("tree ownership", func() {
	g.It("counts descendants recursively", func() {
		w, _ := NewW(-1, 0, 0, 0, 0)
		tau, _ := NewTau(0, 0, 0, false)
		nu, _ := NewNeutrino(taxonomy.TauNeutrino, 0, 0, 0, false, true)
		w.AddProduct(tau)
		w.AddProduct(nu)
		for _, s := range []taxonomy.Species{taxonomy.Muon, taxonomy.MuonNeutrino, taxonomy.TauNeutrino} {
			tau.AddProduct(lepton(s, false))
		}

		Expect(w.TotalDecayProducts()).To(Equal(5))
		Expect(tau.TotalDecayProducts()).To(Equal(3))
		Expect(Leaves(w)).To(HaveLen(4))
	})

	g.It("sums descendant four-momentum", func() {
		z, _ := NewZ(0, 0, 0, 0)
		a := lepton(taxonomy.Muon, false)
		b := lepton(taxonomy.Muon, true)
		a.SetMomentum(fourvec.MustNew(10, 1, 0, 0))
		b.SetMomentum(fourvec.MustNew(20, -1, 2, 0))
		z.AddProduct(a)
		z.AddProduct(b)

		got := z.SumDescendantFourMomentum()
		Expect(got.E()).To(Equal(30.0))
		Expect(got.Py()).To(Equal(2.0))
	})

	g.It("refuses cycles and second parents", func() {
		z, _ := NewZ(0, 0, 0, 0)
		Expect(func() { z.AddProduct(z) }).To(Panic())

		w, _ := NewW(1, 0, 0, 0, 0)
		mu := lepton(taxonomy.Muon, true)
		w.AddProduct(mu)
		Expect(func() { z.AddProduct(mu) }).To(Panic())

		z.AddProduct(w)
		Expect(func() { mu.AddProduct(z) }).To(Panic())

		w.ClearProducts()
		Expect(func() { z.AddProduct(mu) }).NotTo(Panic())
	})

	g.It("returns a copy of the product list", func() {
		z, _ := NewZ(0, 0, 0, 0)
		z.AddProduct(lepton(taxonomy.Electron, false))
		ps := z.Products()
		ps[0] = nil
		Expect(z.Products()[0]).NotTo(BeNil())
	})
})

var _ = g.Describe("cloning", func() {
	var (
		d *Decayer
		z *ZBoson
	)

	g.BeforeEach(func() {
		d = NewDecayer(WithSeed(7), WithMaxIterations(20000))
		z, _ = NewZ(190, 423, 780, 0)
		z.Decay(d)
	})

	g.It("deep copies products", func() {
		c := z.Clone(true)
		Expect(c.TotalDecayProducts()).To(Equal(z.TotalDecayProducts()))
		Expect(c.DecayChannel()).To(Equal(z.DecayChannel()))

		before := z.Products()[0].Momentum()
		c.Products()[0].SetMomentum(fourvec.MustNew(1, 2, 3, 4))
		Expect(z.Products()[0].Momentum()).To(Equal(before))
		Expect(c.Products()[0]).NotTo(BeIdenticalTo(z.Products()[0]))
	})

	g.It("drops products and channel without products", func() {
		c := z.Clone(false)
		Expect(c.Products()).To(BeEmpty())
		Expect(c.DecayChannel()).To(BeEmpty())
		Expect(c.Momentum()).To(Equal(z.Momentum()))

		rep := c.Decay(d)
		Expect(rep.Products).To(HaveLen(2))
		Expect(z.Products()).To(HaveLen(2))
	})

	g.It("copies electron deposits independently", func() {
		e, _ := NewElectron(1, 2, 3, []float64{1, 1}, false)
		c := e.Clone(false).(*Electron)
		c.deposits[0] = 99
		Expect(e.Deposits()[0]).NotTo(Equal(99.0))
	})
})

var _ = g.Describe("stable species", func() {
	g.It("reports stable and creates nothing", func() {
		e, _ := NewElectron(1, 2, 3, nil, false)
		rep := e.Decay(nil)
		Expect(rep.Stable).To(BeTrue())
		Expect(e.Products()).To(BeEmpty())

		top, _ := NewQuark(taxonomy.Top, 1, 2, 3, taxonomy.Green, false)
		Expect(top.Decay(nil).Stable).To(BeTrue())
		Expect(top.Stable()).To(BeTrue())
	})

	g.It("gives on-shell massless particles |p| energy", func() {
		ph, _ := NewPhoton(105, 407, 7)
		Expect(math.Abs(ph.Momentum().E() - ph.Momentum().P())).To(BeNumerically("<", 1e-9))
	})

	g.It("derives photon frequency and wavelength from energy", func() {
		ph, _ := NewPhoton(0, 0, 1)
		Expect(ph.Frequency()).To(BeNumerically("~", 2.418e20, 1e17))
		Expect(ph.Wavelength() * ph.Frequency()).To(BeNumerically("~", SpeedOfLight, 1e-3))
		Expect(ph.Wavelength()).To(BeNumerically("~", 1.2398e-12, 1e-15))

		dark, _ := NewPhoton(0, 0, 0)
		Expect(math.IsInf(dark.Wavelength(), 1)).To(BeTrue())
	})
})
