package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a dot matrix of Width*2 by Height*4 pixels drawn with braille
// characters.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the pixel at (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawProfile plots values across the full width, scaled so that max sits
// on the top row. Non-positive max draws a flat line at the bottom.
func (c *Canvas) DrawProfile(values []float64, max float64) {
	if len(values) == 0 {
		return
	}
	w, h := c.Pixels()
	y := func(v float64) int {
		if max <= 0 || math.IsNaN(v) {
			return h - 1
		}
		return h - 1 - int(math.Min(v/max, 1)*float64(h-1))
	}
	x := func(i int) int {
		if len(values) == 1 {
			return 0
		}
		return i * (w - 1) / (len(values) - 1)
	}
	px, py := x(0), y(values[0])
	for i := 1; i < len(values); i++ {
		nx, ny := x(i), y(values[i])
		c.DrawLine(px, py, nx, ny)
		px, py = nx, ny
	}
	if len(values) == 1 {
		c.Set(px, py)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
