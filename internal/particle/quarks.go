package particle

import (
	"fmt"

	"github.com/san-kum/decaysim/internal/taxonomy"
)

type Quark struct {
	node
	colour taxonomy.Colour
}

// NewQuark builds a quark of the given flavour. A colour whose polarity
// does not match anti is swapped and recorded as a notice.
func NewQuark(flavour taxonomy.Species, px, py, pz float64, colour taxonomy.Colour, anti bool) (*Quark, error) {
	if taxonomy.Info(flavour).Family != taxonomy.Quark {
		return nil, fmt.Errorf("%s is not a quark: %w", flavour, ErrInvalidFlavour)
	}
	if !colour.IsColour() && !colour.IsAnticolour() {
		return nil, fmt.Errorf("%s: %w", colour, ErrInvalidColour)
	}
	n, err := newNode(flavour, anti, px, py, pz)
	if err != nil {
		return nil, err
	}
	q := &Quark{node: n, colour: colour}
	if fixed := colour.ForPolarity(anti); fixed != colour {
		q.colour = fixed
		q.notice(NoticeColourCorrected, "colour %s does not match polarity, using %s", colour, fixed)
	}
	return q, nil
}

func (q *Quark) Flavour() taxonomy.Species { return q.species }

func (q *Quark) Colour() taxonomy.Colour { return q.colour }

func (q *Quark) Clone(withProducts bool) Particle {
	c := *q
	c.node = q.copyNode(withProducts)
	return &c
}

func (q *Quark) Decay(d *Decayer) *Report { return decayWith(d, q) }
