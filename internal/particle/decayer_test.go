package particle

import (
	"math"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/decaysim/internal/conservation"
	"github.com/san-kum/decaysim/internal/kinematics"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

type countingRecorder struct {
	decays     map[string]int
	iterations int
	violations int
}

func (r *countingRecorder) Decayed(typ, channel string) { r.decays[typ+" "+channel]++ }

func (r *countingRecorder) Redistributed(_ string, res kinematics.Result) {
	r.iterations += res.Iterations
}

func (r *countingRecorder) Violated(conservation.Violation) { r.violations++ }

var _ = g.Describe("Decayer", func() {
	g.It("conserves W- charge whichever channel is drawn", func() {
		for seed := int64(1); seed <= 40; seed++ {
			d := NewDecayer(WithSeed(seed), WithMaxIterations(20000))
			w, _ := NewW(-1, 0, 0, 0, 0)
			rep := w.Decay(d)
			Expect(chargeOf(w.Products())).To(Equal(-taxonomy.One), rep.Channel)
			Expect(rep.Violations).To(BeEmpty())
		}
	})

	g.It("decays a Z at rest back to back", func() {
		for seed := int64(1); seed <= 20; seed++ {
			d := NewDecayer(WithSeed(seed), WithMaxIterations(20000))
			z, _ := NewZ(0, 0, 0, 0)
			rep := z.Decay(d)
			Expect(rep.Redistribution.Converged).To(BeTrue(), rep.Channel)

			ps := z.Products()
			Expect(ps).To(HaveLen(2))
			a, b := ps[0].Momentum(), ps[1].Momentum()
			Expect(a.E()).To(BeNumerically("~", taxonomy.ZMass/2, taxonomy.ZMass*1e-3))
			Expect(a.Px() + b.Px()).To(BeNumerically("~", 0, 1e-6))
			Expect(a.Pz() + b.Pz()).To(BeNumerically("~", 0, 1e-6))
		}
	})

	g.It("decays taus produced by a Z", func() {
		for seed := int64(1); seed <= 200; seed++ {
			d := NewDecayer(WithSeed(seed), WithMaxIterations(20000))
			z, _ := NewZ(0, 0, 0, 0)
			rep := z.Decay(d)
			if rep.Channel != "Leptonic tau" {
				continue
			}
			Expect(rep.Subdecays).To(HaveLen(2))
			for _, p := range z.Products() {
				Expect(p.Products()).To(HaveLen(3))
				Expect(p.DecayChannel()).NotTo(BeEmpty())
			}
			Expect(z.TotalDecayProducts()).To(Equal(8))
			return
		}
		g.Fail("no seed produced Z -> tau tau")
	})

	g.It("rescales electron deposits after redistribution", func() {
		for seed := int64(1); seed <= 200; seed++ {
			d := NewDecayer(WithSeed(seed), WithMaxIterations(20000))
			w, _ := NewW(-1, 0, 0, 0, 0)
			if w.Decay(d).Channel != "Leptonic e" {
				continue
			}
			e := w.Products()[0].(*Electron)
			var sum float64
			for _, dep := range e.Deposits() {
				sum += dep
			}
			Expect(math.Abs(sum - e.Momentum().E())).To(BeNumerically("<", DepositTolerance))
			return
		}
		g.Fail("no seed produced W -> e nu")
	})

	g.It("exempts virtual Higgs products from the mass check", func() {
		for seed := int64(1); seed <= 200; seed++ {
			d := NewDecayer(WithSeed(seed), WithMaxIterations(20000))
			h, _ := NewHiggs(0, 0, 0)
			rep := h.Decay(d)
			if rep.Group != GroupVirtual {
				continue
			}
			Expect(rep.Borrowed).To(BeNumerically(">", 0))
			Expect(rep.Subdecays).To(HaveLen(2))
			for _, v := range rep.Violations {
				Expect(v.Check).NotTo(Equal("invariant_mass"))
			}
			return
		}
		g.Fail("no seed produced a virtual channel")
	})

	g.It("is reproducible for a fixed seed", func() {
		run := func() []string {
			d := NewDecayer(WithSeed(99), WithMaxIterations(5000))
			var out []string
			for i := 0; i < 10; i++ {
				w, _ := NewW(1, 1, 1, 4, 0)
				out = append(out, w.Decay(d).Channels()...)
			}
			return out
		}
		Expect(run()).To(Equal(run()))
	})

	g.It("appends on a second Decay and replaces on Redecay", func() {
		d := NewDecayer(WithSeed(3), WithMaxIterations(5000))
		z, _ := NewZ(0, 0, 0, 0)
		z.Decay(d)
		Expect(z.Products()).To(HaveLen(2))
		z.Decay(d)
		Expect(z.Products()).To(HaveLen(4))

		d.Redecay(z)
		Expect(z.Products()).To(HaveLen(2))
	})

	g.It("reports and logs non-convergence", func() {
		core, logs := observer.New(zap.WarnLevel)
		rec := &countingRecorder{decays: map[string]int{}}
		d := NewDecayer(WithSeed(5), WithMaxIterations(1), WithLogger(zap.New(core)), WithRecorder(rec))

		tau, _ := NewTau(24, 256, 34, false)
		rep := tau.Decay(d)
		if rep.Redistribution.Converged {
			Skip("first iteration converged for this seed")
		}
		Expect(rep.Converged()).To(BeFalse())
		Expect(rep.Redistribution.Iterations).To(Equal(1))
		Expect(logs.FilterMessage("energy-momentum redistribution did not converge").Len()).To(Equal(1))
		Expect(rec.decays["Tau "+rep.Channel]).To(Equal(1))
		Expect(rec.iterations).To(Equal(1))
	})
})
