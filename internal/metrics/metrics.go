package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/san-kum/decaysim/internal/conservation"
	"github.com/san-kum/decaysim/internal/kinematics"
)

// Recorder counts decay outcomes on its own registry. It satisfies
// particle.Recorder and is safe for concurrent use.
type Recorder struct {
	registry   *prometheus.Registry
	decays     *prometheus.CounterVec
	iterations prometheus.Histogram
	failures   *prometheus.CounterVec
	violations *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		decays: f.NewCounterVec(prometheus.CounterOpts{
			Name: "decaysim_decays_total",
			Help: "Decays performed, by parent type and channel.",
		}, []string{"type", "channel"}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "decaysim_redistribution_iterations",
			Help:    "Iterations the energy-momentum redistribution needed.",
			Buckets: prometheus.ExponentialBuckets(1, 10, 8),
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "decaysim_redistribution_failures_total",
			Help: "Redistributions that hit the iteration cap, by parent type.",
		}, []string{"type"}),
		violations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "decaysim_conservation_violations_total",
			Help: "Failed conservation checks, by check.",
		}, []string{"check"}),
	}
}

func (r *Recorder) Decayed(typ, channel string) {
	r.decays.WithLabelValues(typ, channel).Inc()
}

func (r *Recorder) Redistributed(typ string, res kinematics.Result) {
	r.iterations.Observe(float64(res.Iterations))
	if !res.Converged {
		r.failures.WithLabelValues(typ).Inc()
	}
}

func (r *Recorder) Violated(v conservation.Violation) {
	r.violations.WithLabelValues(v.Check).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes the current values in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// DecayCount sums recorded decays of typ over every channel.
func (r *Recorder) DecayCount(typ string) float64 {
	families, err := r.registry.Gather()
	if err != nil {
		return 0
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != "decaysim_decays_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "type" && l.GetValue() == typ {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}
