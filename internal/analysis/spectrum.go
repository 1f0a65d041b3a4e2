package analysis

import (
	"sort"

	"github.com/san-kum/decaysim/internal/particle"
)

// Histogram has len(Counts) equal-width bins over [Min, Max].
type Histogram struct {
	Min, Max float64
	Counts   []int
}

func (h Histogram) Width() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return (h.Max - h.Min) / float64(len(h.Counts))
}

// Centers returns the midpoint of every bin.
func (h Histogram) Centers() []float64 {
	w := h.Width()
	out := make([]float64, len(h.Counts))
	for i := range out {
		out[i] = h.Min + (float64(i)+0.5)*w
	}
	return out
}

func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// EnergySpectrum bins values into a histogram spanning their range. The
// maximum value lands in the last bin.
func EnergySpectrum(values []float64, bins int) Histogram {
	if bins <= 0 {
		bins = 1
	}
	h := Histogram{Counts: make([]int, bins)}
	if len(values) == 0 {
		return h
	}

	h.Min, h.Max = values[0], values[0]
	for _, v := range values {
		if v < h.Min {
			h.Min = v
		}
		if v > h.Max {
			h.Max = v
		}
	}
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}

	w := h.Width()
	for _, v := range values {
		i := int((v - h.Min) / w)
		if i >= bins {
			i = bins - 1
		}
		h.Counts[i]++
	}
	return h
}

// LeafEnergies returns the energies of the final-state particles below p.
func LeafEnergies(p particle.Particle) []float64 {
	leaves := particle.Leaves(p)
	out := make([]float64, len(leaves))
	for i, l := range leaves {
		out[i] = l.Momentum().E()
	}
	return out
}

// ChannelFrequencies counts every channel drawn in the report trees,
// keyed by "type: channel".
func ChannelFrequencies(reports []*particle.Report) map[string]int {
	freq := make(map[string]int)
	for _, r := range reports {
		r.Each(func(r *particle.Report) {
			if r.Stable {
				return
			}
			freq[r.Type+": "+r.Channel]++
		})
	}
	return freq
}

type Frequency struct {
	Key   string
	Count int
}

// Sorted orders frequencies by descending count, then key.
func Sorted(freq map[string]int) []Frequency {
	out := make([]Frequency, 0, len(freq))
	for k, v := range freq {
		out = append(out, Frequency{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
