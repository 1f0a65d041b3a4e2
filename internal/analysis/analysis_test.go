package analysis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/decaysim/internal/particle"
)

func TestEnergySpectrum(t *testing.T) {
	h := EnergySpectrum([]float64{0, 1, 2, 3, 4, 10}, 5)

	if h.Min != 0 || h.Max != 10 {
		t.Errorf("expected range [0, 10], got [%v, %v]", h.Min, h.Max)
	}
	if diff := cmp.Diff([]int{2, 2, 1, 0, 1}, h.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if h.Total() != 6 {
		t.Errorf("expected total 6, got %d", h.Total())
	}
	if c := h.Centers(); c[0] != 1 || c[4] != 9 {
		t.Errorf("unexpected centers %v", c)
	}
}

func TestEnergySpectrum_Degenerate(t *testing.T) {
	h := EnergySpectrum(nil, 0)
	if len(h.Counts) != 1 || h.Total() != 0 {
		t.Errorf("expected one empty bin, got %v", h.Counts)
	}

	h = EnergySpectrum([]float64{5, 5, 5}, 3)
	if h.Counts[0] != 3 {
		t.Errorf("expected all values in first bin, got %v", h.Counts)
	}
}

func decayedZ(t *testing.T, seed int64) (*particle.ZBoson, *particle.Report) {
	t.Helper()
	d := particle.NewDecayer(particle.WithSeed(seed), particle.WithMaxIterations(20000))
	z, err := particle.NewZ(0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return z, z.Decay(d)
}

func TestLeafEnergies(t *testing.T) {
	g, _ := particle.NewPhoton(3, 4, 0)
	if diff := cmp.Diff([]float64{5}, LeafEnergies(g)); diff != "" {
		t.Errorf("undecayed particle should be its own leaf: %s", diff)
	}

	z, _ := decayedZ(t, 4)
	energies := LeafEnergies(z)
	if len(energies) < 2 {
		t.Fatalf("expected at least two leaves, got %d", len(energies))
	}
	for _, e := range energies {
		if e <= 0 {
			t.Errorf("leaf energy should be positive, got %v", e)
		}
	}
}

func TestChannelFrequencies(t *testing.T) {
	var reports []*particle.Report
	for seed := int64(1); seed <= 10; seed++ {
		_, rep := decayedZ(t, seed)
		reports = append(reports, rep)
	}
	reports = append(reports, &particle.Report{Type: "Electron", Stable: true})

	freq := ChannelFrequencies(reports)
	zCount := 0
	for key, n := range freq {
		if strings.HasPrefix(key, "ZBoson: ") {
			zCount += n
		}
	}
	if zCount != 10 {
		t.Errorf("expected 10 Z decays, got %d", zCount)
	}
	if _, ok := freq["Electron: "]; ok {
		t.Error("stable reports should not be counted")
	}
}

func TestSorted(t *testing.T) {
	got := Sorted(map[string]int{"b": 2, "a": 2, "c": 5})
	want := []Frequency{{"c", 5}, {"a", 2}, {"b", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestKinematicScatter(t *testing.T) {
	z, _ := particle.NewZ(0, 0, 0, 0)
	a, _ := particle.NewPhoton(0, 0, 10)
	b, _ := particle.NewPhoton(0, 0, -10)
	z.AddProduct(a)
	z.AddProduct(b)
	rest, _ := particle.NewHiggs(0, 0, 0)

	s := KinematicScatter(z, rest)
	want := []Point{{1, 10}, {-1, 10}, {0, 125110}}
	if diff := cmp.Diff(want, s.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}

	art := ScatterToASCII(s, 20, 8)
	if strings.Count(art, "\n") != 8 {
		t.Errorf("expected 8 rows, got %d", strings.Count(art, "\n"))
	}
	if !strings.Contains(art, "•") {
		t.Error("expected plotted points")
	}
	if ScatterToASCII(&Scatter{}, 10, 10) != "" {
		t.Error("empty scatter should render nothing")
	}
}
