package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/decaysim/internal/particle"
	"github.com/san-kum/decaysim/internal/storage"
	"github.com/san-kum/decaysim/internal/taxonomy"
	"github.com/san-kum/decaysim/internal/viz"
)

const (
	colWidth  = 120.0
	rowHeight = 70.0
	margin    = 40.0
)

type node struct {
	label    string
	sub      string
	family   taxonomy.Family
	known    bool
	children []*node

	x, y float64
}

func fromParticle(p particle.Particle) *node {
	n := &node{
		label:  p.Type(),
		sub:    fmt.Sprintf("E=%.2f", p.Momentum().E()),
		family: taxonomy.Info(p.Species()).Family,
		known:  true,
	}
	if ch := p.DecayChannel(); ch != "" {
		n.sub = ch
	}
	for _, c := range p.Products() {
		n.children = append(n.children, fromParticle(c))
	}
	return n
}

func fromRows(rows []storage.Row) []*node {
	nodes := make([]*node, len(rows))
	var roots []*node
	for i, r := range rows {
		n := &node{label: r.Type, sub: fmt.Sprintf("E=%.2f", r.E)}
		if r.Channel != "" {
			n.sub = r.Channel
		}
		if s, _, err := taxonomy.ParseSpecies(r.Type); err == nil {
			n.family, n.known = taxonomy.Info(s).Family, true
		}
		nodes[i] = n
		if r.Parent < 0 || r.Parent >= i {
			roots = append(roots, n)
			continue
		}
		nodes[r.Parent].children = append(nodes[r.Parent].children, n)
	}
	return roots
}

// layout places leaves on consecutive columns and centres every parent
// over its children. It returns the next free column and the deepest row.
func layout(n *node, col float64, depth int) (float64, int) {
	n.y = margin + float64(depth)*rowHeight
	if len(n.children) == 0 {
		n.x = margin + col*colWidth
		return col + 1, depth
	}
	deepest := depth
	for _, c := range n.children {
		var d int
		col, d = layout(c, col, depth+1)
		deepest = max(deepest, d)
	}
	n.x = (n.children[0].x + n.children[len(n.children)-1].x) / 2
	return col, deepest
}

// TreeToSVG draws the decay tree below p.
func TreeToSVG(p particle.Particle, theme viz.Theme) string {
	return forestToSVG([]*node{fromParticle(p)}, theme)
}

// RowsToSVG draws every tree of a stored run side by side.
func RowsToSVG(rows []storage.Row, theme viz.Theme) string {
	return forestToSVG(fromRows(rows), theme)
}

func forestToSVG(roots []*node, theme viz.Theme) string {
	col, deepest := 0.0, 0
	for _, r := range roots {
		var d int
		col, d = layout(r, col, 0)
		deepest = max(deepest, d)
		col += 0.5
	}
	width := 2*margin + max(col-1.5, 0)*colWidth + colWidth/2
	height := 2*margin + float64(deepest)*rowHeight

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="monospace" font-size="11">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-width=\"1.2\">\n", theme.Muted)
	for _, r := range roots {
		edges(&sb, r)
	}
	sb.WriteString("</g>\n")

	for _, r := range roots {
		labels(&sb, r, theme)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func edges(sb *strings.Builder, n *node) {
	for _, c := range n.children {
		fmt.Fprintf(sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", n.x, n.y+8, c.x, c.y-14)
		edges(sb, c)
	}
}

func labels(sb *strings.Builder, n *node, theme viz.Theme) {
	colour := theme.Text
	if n.known {
		switch n.family {
		case taxonomy.Lepton:
			colour = theme.Lepton
		case taxonomy.Quark:
			colour = theme.Quark
		case taxonomy.Boson:
			colour = theme.Boson
		}
	}
	fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" text-anchor=\"middle\" font-weight=\"bold\">%s</text>\n",
		n.x, n.y-2, colour, html.EscapeString(n.label))
	fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" text-anchor=\"middle\">%s</text>\n",
		n.x, n.y+10, theme.Muted, html.EscapeString(n.sub))
	for _, c := range n.children {
		labels(sb, c, theme)
	}
}

// CanvasToSVG converts a Braille canvas to SVG dots.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}
	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, theme.Title)

	radius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for sy := 0; sy < 4; sy++ {
				for sx := 0; sx < 2; sx++ {
					if !canvas.Lit(col*2+sx, row*4+sy) {
						continue
					}
					cx := float64(col*2+sx)*scale + scale/2
					cy := float64(row*4+sy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, radius)
				}
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
