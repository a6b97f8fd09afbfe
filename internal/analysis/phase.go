package analysis

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

type Point struct{ X, Y float64 }

// PhasePortrait pairs two recorded metric series sample by sample.
type PhasePortrait struct {
	XLabel, YLabel string
	Points         []Point
}

// NewPhasePortrait builds a portrait from equally long series.
func NewPhasePortrait(xLabel string, x []float64, yLabel string, y []float64) (*PhasePortrait, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("series lengths differ: %s has %d, %s has %d", xLabel, len(x), yLabel, len(y))
	}
	p := &PhasePortrait{XLabel: xLabel, YLabel: yLabel, Points: make([]Point, len(x))}
	for i := range x {
		p.Points[i] = Point{X: x[i], Y: y[i]}
	}
	return p, nil
}

// Bounds is the data range padded by 5% on every side. A constant series
// gets a unit span around its value.
func (p *PhasePortrait) Bounds() (minX, maxX, minY, maxY float64) {
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	minX, maxX = padded(floats.Min(xs), floats.Max(xs))
	minY, maxY = padded(floats.Min(ys), floats.Max(ys))
	return minX, maxX, minY, maxY
}

func padded(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - 0.5, hi + 0.5
	}
	return lo - 0.05*span, hi + 0.05*span
}

// Render draws the trajectory on a width × height character grid followed by
// one line naming the axes and their ranges. Consecutive samples are joined;
// 'o' marks the first sample and '*' the last.
func (p *PhasePortrait) Render(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}
	minX, maxX, minY, maxY := p.Bounds()

	cells := make([][]rune, height)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(" ", width))
	}
	cell := func(pt Point) (int, int) {
		c := int(math.Round((pt.X - minX) / (maxX - minX) * float64(width-1)))
		r := height - 1 - int(math.Round((pt.Y-minY)/(maxY-minY)*float64(height-1)))
		return c, r
	}

	c0, r0 := cell(p.Points[0])
	for _, pt := range p.Points[1:] {
		c1, r1 := cell(pt)
		n := max(abs(c1-c0), abs(r1-r0))
		for k := 0; k <= n; k++ {
			c, r := c0, r0
			if n > 0 {
				c += (c1 - c0) * k / n
				r += (r1 - r0) * k / n
			}
			cells[r][c] = '·'
		}
		c0, r0 = c1, r1
	}
	c, r := cell(p.Points[0])
	cells[r][c] = 'o'
	c, r = cell(p.Points[len(p.Points)-1])
	cells[r][c] = '*'

	var sb strings.Builder
	for _, row := range cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "x: %s [%.4g, %.4g]  y: %s [%.4g, %.4g]\n", p.XLabel, minX, maxX, p.YLabel, minY, maxY)
	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
