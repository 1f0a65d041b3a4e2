package particle

import (
	"fmt"
	"slices"

	"github.com/san-kum/decaysim/internal/fourvec"
	"github.com/san-kum/decaysim/internal/kinematics"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

// Particle is the capability set shared by every species variant.
type Particle interface {
	kinematics.Body

	Type() string
	Species() taxonomy.Species
	IsAntiparticle() bool
	Mass() float64
	Charge() taxonomy.Thirds
	Spin() float64
	BaryonNumber() taxonomy.Thirds
	LeptonNumbers() taxonomy.LeptonNumbers

	Products() []Particle
	AddProduct(Particle)
	ClearProducts()
	TotalDecayProducts() int
	SumDescendantFourMomentum() fourvec.FourVector

	Clone(withProducts bool) Particle
	Decay(d *Decayer) *Report

	Notices() []Notice
	DecayChannel() string
	BorrowedEnergy() float64
	Stable() bool

	base() *node
}

// Notice records a construction-time correction.
type Notice struct {
	Type    string
	Kind    string
	Message string
}

const (
	NoticeColourCorrected  = "colour_corrected"
	NoticeDepositsRescaled = "deposits_rescaled"
)

type node struct {
	species  taxonomy.Species
	anti     bool
	props    taxonomy.Properties
	p        fourvec.FourVector
	products []Particle
	owned    bool
	channel  string
	borrowed float64
	notices  []Notice
}

func newNode(s taxonomy.Species, anti bool, px, py, pz float64) (node, error) {
	props := taxonomy.Info(s).For(anti)
	return newNodeWithMass(s, anti, props, px, py, pz)
}

func newNodeWithMass(s taxonomy.Species, anti bool, props taxonomy.Properties, px, py, pz float64) (node, error) {
	if taxonomy.Massive(s) && props.Mass <= 0 {
		return node{}, fmt.Errorf("%s: %w", props.Name, ErrNonPositiveMass)
	}
	p, err := fourvec.OnShell(props.Mass, px, py, pz)
	if err != nil {
		return node{}, fmt.Errorf("%s: %w", props.Name, err)
	}
	return node{species: s, anti: anti, props: props, p: p}, nil
}

func (n *node) base() *node { return n }

func (n *node) Type() string {
	return taxonomy.TypeName(n.species, n.anti, n.props.Charge)
}

func (n *node) Species() taxonomy.Species     { return n.species }
func (n *node) IsAntiparticle() bool          { return n.anti }
func (n *node) Mass() float64                 { return n.props.Mass }
func (n *node) DecayMass() float64            { return n.props.Mass }
func (n *node) Charge() taxonomy.Thirds       { return n.props.Charge }
func (n *node) Spin() float64                 { return n.props.Spin }
func (n *node) BaryonNumber() taxonomy.Thirds { return n.props.Baryon }

func (n *node) LeptonNumbers() taxonomy.LeptonNumbers { return n.props.Lepton }

func (n *node) Momentum() fourvec.FourVector     { return n.p }
func (n *node) SetMomentum(p fourvec.FourVector) { n.p = p }

func (n *node) Products() []Particle { return slices.Clone(n.products) }

// AddProduct transfers ownership of child to n. Adding a node to itself,
// to one of its own descendants or to a second parent panics.
func (n *node) AddProduct(child Particle) {
	if child == nil {
		panic("particle: nil product")
	}
	c := child.base()
	if c == n || contains(c, n) {
		panic("particle: product would create a cycle")
	}
	if c.owned {
		panic("particle: product already has a parent")
	}
	c.owned = true
	n.products = append(n.products, child)
}

func contains(root, target *node) bool {
	for _, p := range root.products {
		c := p.base()
		if c == target || contains(c, target) {
			return true
		}
	}
	return false
}

// ClearProducts releases the products and forgets the recorded channel.
func (n *node) ClearProducts() {
	for _, p := range n.products {
		p.base().owned = false
	}
	n.products = nil
	n.channel = ""
}

func (n *node) TotalDecayProducts() int {
	total := len(n.products)
	for _, p := range n.products {
		total += p.TotalDecayProducts()
	}
	return total
}

func (n *node) SumDescendantFourMomentum() fourvec.FourVector {
	sum := fourvec.Zero()
	for _, p := range n.products {
		sum = sum.Add(p.Momentum()).Add(p.SumDescendantFourMomentum())
	}
	return sum
}

func (n *node) Notices() []Notice { return slices.Clone(n.notices) }

func (n *node) notice(kind, format string, args ...any) {
	n.notices = append(n.notices, Notice{Type: n.Type(), Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (n *node) DecayChannel() string    { return n.channel }
func (n *node) BorrowedEnergy() float64 { return n.borrowed }
func (n *node) Stable() bool            { return !taxonomy.Unstable(n.species) }

// copyNode duplicates n. Without products the copy also drops the channel
// so it can be decayed afresh.
func (n *node) copyNode(withProducts bool) node {
	c := *n
	c.owned = false
	c.notices = slices.Clone(n.notices)
	c.products = nil
	if !withProducts {
		c.channel = ""
		return c
	}
	for _, p := range n.products {
		cp := p.Clone(true)
		cp.base().owned = true
		c.products = append(c.products, cp)
	}
	return c
}

// Walk visits p and every descendant depth first. Returning false from fn
// skips the node's products.
func Walk(p Particle, fn func(p Particle, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Particle, depth int, fn func(Particle, int) bool) {
	if !fn(p, depth) {
		return
	}
	for _, c := range p.base().products {
		walk(c, depth+1, fn)
	}
}

// Leaves returns the final-state particles below p, or p itself when it
// has no products.
func Leaves(p Particle) []Particle {
	var out []Particle
	Walk(p, func(q Particle, _ int) bool {
		if len(q.base().products) == 0 {
			out = append(out, q)
		}
		return true
	})
	return out
}
