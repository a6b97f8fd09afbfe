package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// LineSVG renders y against x as a single polyline with 10% padding on
// each axis.
func LineSVG(x, y []float64, width, height int, stroke string) (string, error) {
	if len(x) != len(y) {
		return "", fmt.Errorf("x has %d points, y has %d", len(x), len(y))
	}
	if len(x) < 2 {
		return "", fmt.Errorf("need at least 2 points, got %d", len(x))
	}

	minX, maxX := padded(floats.Min(x), floats.Max(x))
	minY, maxY := padded(floats.Min(y), floats.Max(y))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	for i := range x {
		px := (x[i] - minX) / (maxX - minX) * float64(width)
		py := float64(height) - (y[i]-minY)/(maxY-minY)*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}

func padded(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - 0.1*span, hi + 0.1*span
}
