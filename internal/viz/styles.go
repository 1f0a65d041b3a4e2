package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/decaysim/internal/taxonomy"
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	family  map[taxonomy.Family]lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	panel   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		text:  lipgloss.NewStyle().Foreground(t.Text),
		muted: lipgloss.NewStyle().Foreground(t.Muted),
		label: lipgloss.NewStyle().Foreground(t.Muted),
		value: lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		family: map[taxonomy.Family]lipgloss.Style{
			taxonomy.Lepton: lipgloss.NewStyle().Bold(true).Foreground(t.Lepton),
			taxonomy.Quark:  lipgloss.NewStyle().Bold(true).Foreground(t.Quark),
			taxonomy.Boson:  lipgloss.NewStyle().Bold(true).Foreground(t.Boson),
		},
		success: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		warning: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		err:     lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// ProgressBar renders a fraction in [0, 1] as a bar of the given width.
func (r *Renderer) ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return r.s.success.Render(bar)
	case fraction > 0.4:
		return r.s.warning.Render(bar)
	}
	return r.s.err.Render(bar)
}

func (r *Renderer) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return r.s.muted.Render(left + " ◆ " + right)
}
