package lattice

import (
	"fmt"
	"math"

	"github.com/san-kum/gaugesim/internal/color"
)

type Grid struct {
	numCells []int
	strides  []int
	spacing  float64
	factory  color.Factory
	total    int
	dims     int

	e     []color.Algebra
	b     []color.Algebra
	u     []color.Group
	unext []color.Group
	rho   []color.Algebra
	j     []color.Algebra
}

// New allocates a grid with zero fields and unit links.
func New(numCells []int, spacing float64, f color.Factory) (*Grid, error) {
	if len(numCells) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidGrid)
	}
	if spacing <= 0 || math.IsNaN(spacing) {
		return nil, fmt.Errorf("%w: spacing %v", ErrInvalidGrid, spacing)
	}
	for d, n := range numCells {
		if n <= 0 {
			return nil, fmt.Errorf("%w: axis %d has %d cells", ErrInvalidGrid, d, n)
		}
	}

	dims := len(numCells)
	g := &Grid{
		numCells: append([]int(nil), numCells...),
		strides:  make([]int, dims),
		spacing:  spacing,
		factory:  f,
		total:    TotalCells(numCells),
		dims:     dims,
	}
	stride := 1
	for d := dims - 1; d >= 0; d-- {
		g.strides[d] = stride
		stride *= numCells[d]
	}

	g.e = make([]color.Algebra, g.total*dims)
	g.j = make([]color.Algebra, g.total*dims)
	g.u = make([]color.Group, g.total*dims)
	g.unext = make([]color.Group, g.total*dims)
	g.b = make([]color.Algebra, g.total*3)
	g.rho = make([]color.Algebra, g.total)
	for k := range g.e {
		g.e[k] = f.Zero()
		g.j[k] = f.Zero()
		g.u[k] = f.Identity()
		g.unext[k] = f.Identity()
	}
	for k := range g.b {
		g.b[k] = f.Zero()
	}
	for k := range g.rho {
		g.rho[k] = f.Zero()
	}
	return g, nil
}

func (g *Grid) Dimensions() int         { return g.dims }
func (g *Grid) Spacing() float64        { return g.spacing }
func (g *Grid) Factory() color.Factory  { return g.factory }
func (g *Grid) TotalCells() int         { return g.total }
func (g *Grid) NumCellsAlong(d int) int { return g.numCells[d] }
func (g *Grid) NumCells() []int         { return append([]int(nil), g.numCells...) }
func (g *Grid) BoxSize(d int) float64   { return float64(g.numCells[d]) * g.spacing }
func (g *Grid) CellIndex(pos []int) int { return Index(pos, g.numCells) }
func (g *Grid) CellPos(index int) []int { return Pos(index, g.numCells) }
func (g *Grid) CellVolume() float64     { return math.Pow(g.spacing, float64(g.dims)) }

// Shift moves a flat index by o cells along axis d, wrapping periodically.
func (g *Grid) Shift(index, d, o int) int {
	n := g.numCells[d]
	c := (index / g.strides[d]) % n
	return index + (mod(c+o, n)-c)*g.strides[d]
}

// E returns the stored element; callers mutate it in place or replace it via SetE.
func (g *Grid) E(i, d int) color.Algebra       { return g.e[i*g.dims+d] }
func (g *Grid) SetE(i, d int, a color.Algebra) { g.e[i*g.dims+d] = a }
func (g *Grid) AddE(i, d int, a color.Algebra) { g.e[i*g.dims+d].AddAssign(a) }

// B holds magnetic component c ∈ {0, 1, 2} of cell i.
func (g *Grid) B(i, c int) color.Algebra       { return g.b[i*3+c] }
func (g *Grid) SetB(i, c int, a color.Algebra) { g.b[i*3+c] = a }

func (g *Grid) U(i, d int) color.Group           { return g.u[i*g.dims+d] }
func (g *Grid) SetU(i, d int, u color.Group)     { g.u[i*g.dims+d] = u }
func (g *Grid) Unext(i, d int) color.Group       { return g.unext[i*g.dims+d] }
func (g *Grid) SetUnext(i, d int, u color.Group) { g.unext[i*g.dims+d] = u }

// SwapLinks exchanges the link buffers. Afterwards Unext holds the links
// that were current before the swap.
func (g *Grid) SwapLinks() {
	g.u, g.unext = g.unext, g.u
}

func (g *Grid) Rho(i int) color.Algebra        { return g.rho[i] }
func (g *Grid) AddRho(i int, a color.Algebra)  { g.rho[i].AddAssign(a) }
func (g *Grid) J(i, d int) color.Algebra       { return g.j[i*g.dims+d] }
func (g *Grid) AddJ(i, d int, a color.Algebra) { g.j[i*g.dims+d].AddAssign(a) }

// ResetCharges zeroes ρ and J.
func (g *Grid) ResetCharges() {
	for _, a := range g.rho {
		a.Clear()
	}
	for _, a := range g.j {
		a.Clear()
	}
}

// Link returns the parallel transporter from x to x+o·d for o = ±1.
func (g *Grid) Link(i, d, o int) color.Group {
	if o > 0 {
		return g.U(i, d)
	}
	return g.U(g.Shift(i, d, -1), d).Adj()
}

// Plaquette is the ordered product of links around the elementary square
// spanned by sa·a and sb·b at cell i.
func (g *Grid) Plaquette(i, a, b, sa, sb int) color.Group {
	ia := g.Shift(i, a, sa)
	ib := g.Shift(i, b, sb)
	return g.Link(i, a, sa).
		Mult(g.Link(ia, b, sb)).
		Mult(g.Link(ib, a, sa).Adj()).
		Mult(g.Link(i, b, sb).Adj())
}

// GaussLaw returns the charge implied at site i by the covariant divergence
// of the electric field.
func (g *Grid) GaussLaw(i int) color.Algebra {
	div := g.factory.Zero()
	for d := 0; d < g.dims; d++ {
		prev := g.Shift(i, d, -1)
		div.AddAssign(g.E(i, d).Sub(g.E(prev, d).Act(g.U(prev, d).Adj())))
	}
	return div.Mult(math.Pow(g.spacing, float64(g.dims-1)))
}

// MagneticField computes component c of B at cell i from the plaquette in
// the orthogonal plane. Only two and three dimensions have a magnetic field
// in this sense.
func (g *Grid) MagneticField(i, c int, coupling float64) (color.Algebra, error) {
	if c < 0 || c > 2 {
		return nil, fmt.Errorf("lattice: magnetic component %d out of range", c)
	}
	var a, b int
	switch g.dims {
	case 3:
		a, b = (c+1)%3, (c+2)%3
	case 2:
		if c != 2 {
			return g.factory.Zero(), nil
		}
		a, b = 0, 1
	default:
		return nil, fmt.Errorf("%w: magnetic field in %d dimensions", ErrUnsupportedDimension, g.dims)
	}
	return g.Plaquette(i, a, b, 1, 1).Log().Mult(1 / (coupling * g.spacing * g.spacing)), nil
}
