package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/decaysim/internal/catalogue"
	"github.com/san-kum/decaysim/internal/particle"
	"github.com/san-kum/decaysim/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type state int

const (
	stateTypes state = iota
	stateType
	stateCopy
	stateSearch
)

type model struct {
	state  state
	cursor int
	types  []string

	selected string
	entry    int

	search   string
	status   string
	copyView string

	cat     *catalogue.Catalogue
	decayer *particle.Decayer
	render  *viz.Renderer

	width  int
	height int
}

func NewBrowser(cat *catalogue.Catalogue, d *particle.Decayer, theme string) *model {
	return &model{
		state:   stateTypes,
		types:   cat.Types(),
		cat:     cat,
		decayer: d,
		render:  viz.NewRenderer(theme),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateTypes:
		return m.typesKey(msg)
	case stateType:
		return m.typeKey(msg)
	case stateCopy:
		if s := msg.String(); s == "esc" || s == "q" || s == "enter" {
			m.state = stateType
		}
	case stateSearch:
		return m.searchKey(msg)
	}
	return m, nil
}

func (m model) typesKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.types)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.types) > 0 {
			m.open(m.types[m.cursor])
		}
	case "/":
		m.state = stateSearch
		m.search = ""
		m.status = ""
	}
	return m, nil
}

func (m model) typeKey(msg tea.KeyMsg) (model, tea.Cmd) {
	entries := m.cat.ByType(m.selected)
	switch msg.String() {
	case "q", "esc":
		m.state = stateTypes
		m.status = ""
	case "up", "k":
		if m.entry > 0 {
			m.entry--
		}
	case "down", "j":
		if m.entry < len(entries)-1 {
			m.entry++
		}
	case "d":
		if len(entries) == 0 {
			break
		}
		p := entries[m.entry]
		if p.Stable() {
			m.status = p.Type() + " is stable"
			break
		}
		rep := m.decayer.Redecay(p)
		m.status = fmt.Sprintf("%s decayed via %s", p.Type(), rep.Channel)
		if !rep.Converged() {
			m.status += " (redistribution did not converge)"
		}
	case "c":
		if len(entries) > 0 {
			m.copyView = m.copyDemo(entries[m.entry])
			m.state = stateCopy
		}
	}
	return m, nil
}

func (m model) searchKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		typ, _, ok := m.cat.Lookup(m.search)
		if !ok {
			m.status = fmt.Sprintf("no particles of type %q", m.search)
			m.state = stateTypes
			return m, nil
		}
		m.open(typ)
	case tea.KeyEsc:
		m.state = stateTypes
	case tea.KeyBackspace:
		if len(m.search) > 0 {
			m.search = m.search[:len(m.search)-1]
		}
	case tea.KeyRunes:
		m.search += string(msg.Runes)
	}
	return m, nil
}

func (m *model) open(typ string) {
	for i, t := range m.types {
		if t == typ {
			m.cursor = i
		}
	}
	m.selected = typ
	m.entry = 0
	m.status = ""
	m.state = stateType
}

// copyDemo deep copies p, then detaches the copy's products to show the
// original tree is unaffected.
func (m model) copyDemo(p particle.Particle) string {
	deep := p.Clone(true)
	shallow := p.Clone(false)
	shared := 0
	for i, c := range deep.Products() {
		if c == p.Products()[i] {
			shared++
		}
	}

	var b strings.Builder
	b.WriteString(cyan.Render("original") + "\n")
	b.WriteString(m.render.RenderTree(p))
	b.WriteString(cyan.Render("deep copy") + "\n")
	b.WriteString(m.render.RenderTree(deep))
	fmt.Fprintf(&b, "%s %d products copied, %d shared\n", dim.Render("·"), deep.TotalDecayProducts(), shared)

	before := p.TotalDecayProducts()
	deep.ClearProducts()
	after := p.TotalDecayProducts()
	if after == before {
		fmt.Fprintf(&b, "%s cleared the copy: original still has %d products\n", dim.Render("·"), after)
	} else {
		fmt.Fprintf(&b, "%s cleared the copy: original dropped from %d to %d products\n", red.Render("✗"), before, after)
	}
	fmt.Fprintf(&b, "%s %s\n", cyan.Render("copy without products"), m.render.Line(shallow))
	return b.String()
}

func (m model) View() string {
	switch m.state {
	case stateTypes, stateSearch:
		return m.viewTypes()
	case stateType:
		return m.viewType()
	case stateCopy:
		return "\n" + m.copyView + "\n" + dim.Render("      esc back") + "\n"
	}
	return ""
}

func (m model) viewTypes() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("d e c a y s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	if len(m.types) == 0 {
		b.WriteString("      " + dim.Render("catalogue is empty") + "\n")
	}
	for i, typ := range m.types {
		count := fmt.Sprintf("%d", m.cat.Count(typ))
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-20s", typ)) + magenta.Render(count) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-20s", typ)) + dimmer.Render(count) + "\n")
		}
	}

	b.WriteString("\n")
	if m.state == stateSearch {
		b.WriteString("      " + cyan.Render("type: ") + white.Render(m.search+"▋") + "\n")
	} else if m.status != "" {
		b.WriteString("      " + yellow.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("      ↑↓ select   enter show   / search   q quit") + "\n")
	return b.String()
}

func (m model) viewType() string {
	var b strings.Builder
	entries := m.cat.ByType(m.selected)

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(fmt.Sprintf("%d in catalogue", len(entries))) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, p := range entries {
		marker := "  "
		if i == m.entry {
			marker = cyan.Render("▸ ")
		}
		tree := strings.TrimRight(m.render.RenderTree(p), "\n")
		for j, line := range strings.Split(tree, "\n") {
			if j == 0 {
				b.WriteString("    " + marker + line + "\n")
			} else {
				b.WriteString("      " + line + "\n")
			}
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("      " + yellow.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("      ↑↓ select  d decay  c copy demo  esc back") + "\n")
	return b.String()
}

func Run(cat *catalogue.Catalogue, d *particle.Decayer, theme string) error {
	p := tea.NewProgram(NewBrowser(cat, d, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
