package analysis

import (
	"strings"

	"github.com/san-kum/decaysim/internal/particle"
)

type Point struct{ X, Y float64 }

// Scatter holds (cos theta, energy) for final-state particles.
type Scatter struct {
	Points []Point
}

// KinematicScatter records every leaf below the given roots. Leaves at rest
// are placed at cos theta = 0.
func KinematicScatter(roots ...particle.Particle) *Scatter {
	s := &Scatter{}
	for _, r := range roots {
		for _, l := range particle.Leaves(r) {
			v := l.Momentum()
			cos := 0.0
			if p := v.P(); p > 0 {
				cos = v.Pz() / p
			}
			s.Points = append(s.Points, Point{X: cos, Y: v.E()})
		}
	}
	return s
}

// ScatterToASCII plots the scatter on a width x height character grid.
func ScatterToASCII(s *Scatter, width, height int) string {
	if s == nil || len(s.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := s.Points[0].X, s.Points[0].X
	minY, maxY := s.Points[0].Y, s.Points[0].Y
	for _, p := range s.Points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range s.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// cos theta = 0 marks the transverse plane
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
