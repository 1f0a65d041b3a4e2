package taxonomy

import "strconv"

// Thirds is an exact rational in units of one third (e/3 for charge).
type Thirds int

const (
	Zero     Thirds = 0
	OneThird Thirds = 1
	TwoThird Thirds = 2
	One      Thirds = 3
)

func (t Thirds) Neg() Thirds { return -t }

func (t Thirds) String() string {
	if t%3 == 0 {
		return strconv.Itoa(int(t) / 3)
	}
	return strconv.Itoa(int(t)) + "/3"
}

// SumThirds adds exactly; no floating point is involved.
func SumThirds(ts ...Thirds) Thirds {
	var total Thirds
	for _, t := range ts {
		total += t
	}
	return total
}
