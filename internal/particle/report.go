package particle

import (
	"github.com/san-kum/decaysim/internal/conservation"
	"github.com/san-kum/decaysim/internal/kinematics"
)

// Report is the structured outcome of one decay and its sub-decays.
type Report struct {
	Type           string
	Stable         bool
	Channel        string
	Group          string
	Borrowed       float64
	Products       []string
	Redistribution kinematics.Result
	Violations     []conservation.Violation
	Notices        []Notice
	Subdecays      []*Report
}

// Converged reports whether this decay and every sub-decay converged.
// Stable reports count as converged.
func (r *Report) Converged() bool {
	if !r.Stable && !r.Redistribution.Converged {
		return false
	}
	for _, s := range r.Subdecays {
		if !s.Converged() {
			return false
		}
	}
	return true
}

// AllViolations flattens the violations of the whole report tree.
func (r *Report) AllViolations() []conservation.Violation {
	out := append([]conservation.Violation(nil), r.Violations...)
	for _, s := range r.Subdecays {
		out = append(out, s.AllViolations()...)
	}
	return out
}

// Channels lists the channel of every decay in the tree, parent first.
func (r *Report) Channels() []string {
	if r.Stable {
		return nil
	}
	out := []string{r.Channel}
	for _, s := range r.Subdecays {
		out = append(out, s.Channels()...)
	}
	return out
}

// Each visits r and its sub-decays depth first.
func (r *Report) Each(fn func(*Report)) {
	fn(r)
	for _, s := range r.Subdecays {
		s.Each(fn)
	}
}
