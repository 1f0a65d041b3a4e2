package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/decaysim/internal/analysis"
	"github.com/san-kum/decaysim/internal/catalogue"
	"github.com/san-kum/decaysim/internal/particle"
	"github.com/san-kum/decaysim/internal/taxonomy"
)

type Renderer struct {
	theme Theme
	s     styles
}

func NewRenderer(theme string) *Renderer {
	t := GetTheme(theme)
	return &Renderer{theme: t, s: newStyles(t)}
}

func (r *Renderer) Theme() Theme { return r.theme }

// Line renders one particle without its products.
func (r *Renderer) Line(p particle.Particle) string {
	style := r.s.family[taxonomy.Info(p.Species()).Family]
	var b strings.Builder
	b.WriteString(style.Render(p.Type()))
	switch v := p.(type) {
	case *particle.Quark:
		b.WriteString(r.s.muted.Render(" " + v.Colour().String()))
	case *particle.Gluon:
		c1, c2 := v.Colours()
		b.WriteString(r.s.muted.Render(" " + c1.String() + "/" + c2.String()))
	}
	if ch := p.DecayChannel(); ch != "" {
		b.WriteString(" " + r.s.value.Render("["+ch+"]"))
	}
	fmt.Fprintf(&b, " %s %s", r.s.label.Render("p="), r.s.text.Render(p.Momentum().String()))
	fmt.Fprintf(&b, " %s %s", r.s.label.Render("m="), r.s.text.Render(fmt.Sprintf("%.3f", p.Mass())))
	fmt.Fprintf(&b, " %s %s", r.s.label.Render("q="), r.s.text.Render(p.Charge().String()))
	if ph, ok := p.(*particle.Photon); ok {
		fmt.Fprintf(&b, " %s %s", r.s.label.Render("f="), r.s.text.Render(fmt.Sprintf("%.4g GHz", ph.Frequency()*1e-9)))
		fmt.Fprintf(&b, " %s %s", r.s.label.Render("λ="), r.s.text.Render(fmt.Sprintf("%.4g nm", ph.Wavelength()*1e9)))
	}
	if e := p.BorrowedEnergy(); e != 0 {
		b.WriteString(" " + r.s.warning.Render(fmt.Sprintf("virtual %+.2f", e)))
	}
	return b.String()
}

// RenderTree draws p and its products, one line per particle.
func (r *Renderer) RenderTree(p particle.Particle) string {
	var b strings.Builder
	b.WriteString(r.Line(p))
	b.WriteByte('\n')
	r.branches(&b, p.Products(), "")
	return b.String()
}

func (r *Renderer) branches(b *strings.Builder, children []particle.Particle, prefix string) {
	for i, c := range children {
		elbow, pad := "├── ", "│   "
		if i == len(children)-1 {
			elbow, pad = "└── ", "    "
		}
		b.WriteString(r.s.muted.Render(prefix + elbow))
		b.WriteString(r.Line(c))
		b.WriteByte('\n')
		r.branches(b, c.Products(), prefix+pad)
	}
}

func (r *Renderer) RenderSummary(sum catalogue.Summary) string {
	var b strings.Builder
	b.WriteString(r.s.header.Render("Catalogue"))
	b.WriteByte('\n')
	r.field(&b, "roots", fmt.Sprintf("%d", sum.Roots))
	r.field(&b, "descendants", fmt.Sprintf("%d", sum.Descendants))
	r.field(&b, "root four-momentum", sum.RootMomentum.String())
	r.field(&b, "root invariant mass", fmt.Sprintf("%.4f", sum.RootMass))
	r.field(&b, "descendant four-momentum", sum.DescendantMomentum.String())
	r.field(&b, "descendant invariant mass", fmt.Sprintf("%.4f", sum.DescendantMass))

	if len(sum.ByType) > 0 {
		b.WriteString(r.s.title.Render("by type"))
		b.WriteByte('\n')
		for _, f := range analysis.Sorted(sum.ByType) {
			fmt.Fprintf(&b, "  %-22s %s\n", f.Key, r.s.value.Render(fmt.Sprintf("%d", f.Count)))
		}
	}
	return r.s.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", r.s.label.Render(fmt.Sprintf("%-26s", label)), r.s.value.Render(value))
}

// RenderReport shows the outcome of one decay and its sub-decays.
func (r *Renderer) RenderReport(rep *particle.Report) string {
	var b strings.Builder
	r.report(&b, rep, "")
	return b.String()
}

func (r *Renderer) report(b *strings.Builder, rep *particle.Report, indent string) {
	if rep.Stable {
		fmt.Fprintf(b, "%s%s %s\n", indent, r.s.text.Render(rep.Type), r.s.muted.Render("stable"))
		return
	}
	status := r.s.success.Render("converged")
	if !rep.Redistribution.Converged {
		status = r.s.err.Render("not converged")
	}
	fmt.Fprintf(b, "%s%s → %s  %s %s\n", indent,
		r.s.title.Render(rep.Type), r.s.value.Render(rep.Channel),
		status, r.s.muted.Render(fmt.Sprintf("(%d iterations)", rep.Redistribution.Iterations)))
	if len(rep.Products) > 0 {
		fmt.Fprintf(b, "%s  %s %s\n", indent, r.s.label.Render("products"), strings.Join(rep.Products, " "))
	}
	if rep.Borrowed != 0 {
		fmt.Fprintf(b, "%s  %s %s\n", indent, r.s.label.Render("borrowed"), r.s.warning.Render(fmt.Sprintf("%.3f", rep.Borrowed)))
	}
	for _, v := range rep.Violations {
		fmt.Fprintf(b, "%s  %s\n", indent, r.s.err.Render("✗ "+v.Error()))
	}
	for _, n := range rep.Notices {
		fmt.Fprintf(b, "%s  %s\n", indent, r.s.warning.Render("! "+n.Message))
	}
	for _, s := range rep.Subdecays {
		r.report(b, s, indent+"  ")
	}
}

// RenderSpectrum plots histogram counts against bin index.
func (r *Renderer) RenderSpectrum(h analysis.Histogram, caption string) string {
	if len(h.Counts) == 0 {
		return r.s.muted.Render("no entries")
	}
	data := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		data[i] = float64(c)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(max(len(data), 40)),
		asciigraph.Caption(fmt.Sprintf("%s [%.2f, %.2f]", caption, h.Min, h.Max)),
	)
	return graph
}

// RenderChannels lists channel frequencies with a bar relative to total.
func (r *Renderer) RenderChannels(freq map[string]int, total int) string {
	if total <= 0 {
		return r.s.muted.Render("no decays")
	}
	var b strings.Builder
	for _, f := range analysis.Sorted(freq) {
		frac := float64(f.Count) / float64(total)
		fmt.Fprintf(&b, "%-28s %s %6.2f%% (%d)\n", f.Key, r.ProgressBar(frac, 20), frac*100, f.Count)
	}
	return b.String()
}
