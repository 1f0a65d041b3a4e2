package storage

import (
	"github.com/san-kum/decaysim/internal/catalogue"
	"github.com/san-kum/decaysim/internal/particle"
)

// Row is one particle of a flattened catalogue. Parent is -1 for roots.
type Row struct {
	Index   int     `json:"index"`
	Root    int     `json:"root"`
	Parent  int     `json:"parent"`
	Depth   int     `json:"depth"`
	Type    string  `json:"type"`
	Channel string  `json:"channel,omitempty"`
	E       float64 `json:"e"`
	Px      float64 `json:"px"`
	Py      float64 `json:"py"`
	Pz      float64 `json:"pz"`
	Mass    float64 `json:"mass"`
	Charge  string  `json:"charge"`
	Notices int     `json:"notices"`
}

// Flatten walks every catalogue root depth first.
func Flatten(cat *catalogue.Catalogue) []Row {
	var rows []Row
	root := 0
	cat.Each(func(e catalogue.Entry) {
		rows = appendTree(rows, e.Particle, root, -1, 0)
		root++
	})
	return rows
}

func appendTree(rows []Row, p particle.Particle, root, parent, depth int) []Row {
	v := p.Momentum()
	idx := len(rows)
	rows = append(rows, Row{
		Index:   idx,
		Root:    root,
		Parent:  parent,
		Depth:   depth,
		Type:    p.Type(),
		Channel: p.DecayChannel(),
		E:       v.E(),
		Px:      v.Px(),
		Py:      v.Py(),
		Pz:      v.Pz(),
		Mass:    p.Mass(),
		Charge:  p.Charge().String(),
		Notices: len(p.Notices()),
	})
	for _, c := range p.Products() {
		rows = appendTree(rows, c, root, idx, depth+1)
	}
	return rows
}

// Leaves returns the rows with no children.
func Leaves(rows []Row) []Row {
	hasChild := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r.Parent >= 0 {
			hasChild[r.Parent] = true
		}
	}
	var out []Row
	for _, r := range rows {
		if !hasChild[r.Index] {
			out = append(out, r)
		}
	}
	return out
}
