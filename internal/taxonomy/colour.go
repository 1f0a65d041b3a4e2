package taxonomy

import (
	"fmt"

	"golang.org/x/text/cases"
)

type Colour int

const (
	Neutral Colour = iota
	Red
	Green
	Blue
	AntiRed
	AntiGreen
	AntiBlue
)

var colourNames = map[Colour]string{
	Neutral:   "Neutral",
	Red:       "Red",
	Green:     "Green",
	Blue:      "Blue",
	AntiRed:   "AntiRed",
	AntiGreen: "AntiGreen",
	AntiBlue:  "AntiBlue",
}

func (c Colour) String() string {
	if name, ok := colourNames[c]; ok {
		return name
	}
	return "Unknown Colour"
}

func (c Colour) IsColour() bool { return c == Red || c == Green || c == Blue }

func (c Colour) IsAnticolour() bool { return c == AntiRed || c == AntiGreen || c == AntiBlue }

// Anti maps a colour to its anticolour and back. Neutral maps to itself.
func (c Colour) Anti() Colour {
	switch c {
	case Red:
		return AntiRed
	case Green:
		return AntiGreen
	case Blue:
		return AntiBlue
	case AntiRed:
		return Red
	case AntiGreen:
		return Green
	case AntiBlue:
		return Blue
	}
	return c
}

// ForPolarity returns c when it already matches anti, else its counterpart.
func (c Colour) ForPolarity(anti bool) Colour {
	if anti && c.IsColour() || !anti && c.IsAnticolour() {
		return c.Anti()
	}
	return c
}

func ParseColour(s string) (Colour, error) {
	fold := cases.Fold()
	key := fold.String(s)
	for c, name := range colourNames {
		if fold.String(name) == key {
			return c, nil
		}
	}
	return Neutral, fmt.Errorf("taxonomy: unknown colour %q", s)
}
