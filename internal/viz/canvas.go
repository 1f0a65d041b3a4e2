package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/decaysim/internal/analysis"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// VLine draws a dotted vertical line at sub-pixel column x.
func (c *Canvas) VLine(x int) {
	for y := 0; y < c.Height*4; y += 2 {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// ScatterCanvas plots cos theta (x, fixed to [-1, 1]) against energy (y)
// scaled to the largest energy. It returns the canvas and that energy.
func ScatterCanvas(s *analysis.Scatter, w, h int) (*Canvas, float64) {
	c := NewCanvas(w, h)
	pw, ph := w*2, h*4

	maxE := 0.0
	for _, p := range s.Points {
		maxE = max(maxE, p.Y)
	}
	if maxE == 0 {
		maxE = 1
	}

	c.VLine(pw / 2)
	for _, p := range s.Points {
		x := int((p.X + 1) / 2 * float64(pw-1))
		y := ph - 1 - int(p.Y/maxE*float64(ph-1))
		c.Set(x, y)
	}
	return c, maxE
}

// RenderScatter draws ScatterCanvas with an axis caption.
func (r *Renderer) RenderScatter(s *analysis.Scatter, w, h int) string {
	if s == nil || len(s.Points) == 0 || w <= 0 || h <= 0 {
		return r.s.muted.Render("no final-state particles")
	}
	c, maxE := ScatterCanvas(s, w, h)
	return c.String() + r.s.muted.Render("cos θ ∈ [-1, 1] →   E ↑ up to ") + r.s.value.Render(fmt.Sprintf("%.2f", maxE))
}
