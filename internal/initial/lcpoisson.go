package initial

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/lattice"
	"github.com/san-kum/gaugesim/internal/sim"
)

// LCPoisson solves for the field of a single sheet of color charge moving
// along the light cone. The density lives on the transverse grid (the
// simulation grid with the propagation axis removed) in units of charge per
// transverse area.
type LCPoisson struct {
	geo     Geometry
	density []color.Algebra

	transverse []int
	phi        []color.Algebra
	gauss      []color.Algebra
}

var _ Solver = (*LCPoisson)(nil)

func NewLCPoisson(geo Geometry, density []color.Algebra) *LCPoisson {
	return &LCPoisson{geo: geo, density: density}
}

// Potential returns φ on the transverse cell with flat index i. Valid after
// Initialize.
func (p *LCPoisson) Potential(i int) color.Algebra { return p.phi[i] }

// Initialize validates the geometry against the grid and solves the
// transverse Poisson equation for every color component.
func (p *LCPoisson) Initialize(s *sim.Simulation) error {
	dims := s.Dimensions()
	if err := p.geo.Validate(dims); err != nil {
		return err
	}
	p.transverse = lattice.ReduceGridPos(s.Grid.NumCells(), p.geo.Direction)
	total := lattice.TotalCells(p.transverse)
	if len(p.density) != total {
		return fmt.Errorf("%w: transverse density has %d cells, grid needs %d",
			sim.ErrInvalidParameter, len(p.density), total)
	}

	f := s.Grid.Factory()
	p.phi = make([]color.Algebra, total)
	for i := range p.phi {
		p.phi[i] = f.Zero()
	}
	rho := make([]float64, total)
	for c := 0; c < f.Components(); c++ {
		for i, a := range p.density {
			rho[i] = a.Get(c)
		}
		phi := SolvePoisson(rho, p.transverse, s.Spacing())
		for i, v := range phi {
			p.phi[i].Set(c, v)
		}
	}
	p.gauss = nil
	return nil
}

// Solve writes the sheet's links and electric field into the simulation
// grid. Links are left-multiplied and E is added, so sheets solved one after
// another superpose.
func (p *LCPoisson) Solve(s *sim.Simulation) error {
	if p.phi == nil {
		return fmt.Errorf("%w: LCPoisson solved before Initialize", sim.ErrInvalidParameter)
	}
	g := s.Grid
	dims := g.Dimensions()
	f := g.Factory()
	as := g.Spacing()

	scratch, err := lattice.New(g.NumCells(), as, f)
	if err != nil {
		return err
	}

	vPlus := p.pureGauge(s, 0.5*s.Dt)
	vMinus := p.pureGauge(s, -0.5*s.Dt)
	norm := -1 / (s.Coupling * as * s.Dt)

	last := g.NumCellsAlong(p.geo.Direction) - 1
	for i := 0; i < g.TotalCells(); i++ {
		for d := 0; d < dims; d++ {
			// Longitudinal links are trivial except across the periodic seam,
			// where W jumps between 0 and 1. There the link is the pure gauge
			// V(last)·V(0)† so the seam plaquettes stay trivial.
			if d == p.geo.Direction && g.CellPos(i)[d] != last {
				continue
			}
			j := g.Shift(i, d, 1)
			plus := vPlus[i].Mult(vPlus[j].Adj())
			minus := vMinus[i].Mult(vMinus[j].Adj())
			scratch.SetU(i, d, plus)
			scratch.SetUnext(i, d, minus)
			scratch.SetE(i, d, plus.Mult(minus.Adj()).Log().Mult(norm))
		}
	}

	p.gauss = make([]color.Algebra, g.TotalCells())
	for i := range p.gauss {
		p.gauss[i] = scratch.GaussLaw(i)
	}

	for i := 0; i < g.TotalCells(); i++ {
		for d := 0; d < dims; d++ {
			g.AddE(i, d, scratch.E(i, d))
			g.SetU(i, d, scratch.U(i, d).Mult(g.U(i, d)))
			g.SetUnext(i, d, scratch.Unext(i, d).Mult(g.Unext(i, d)))
		}
	}
	return nil
}

// GaussConstraint is the charge implied by this sheet's field at cell i, or
// nil before Solve.
func (p *LCPoisson) GaussConstraint(i int) color.Algebra {
	if p.gauss == nil {
		return nil
	}
	return p.gauss[i].Copy()
}

// pureGauge evaluates V(x, t) = exp(-g·W(z, t)·φ(x⊥)) on every cell.
func (p *LCPoisson) pureGauge(s *sim.Simulation, t float64) []color.Group {
	g := s.Grid
	as := g.Spacing()
	dir := p.geo.Direction
	v := make([]color.Group, g.TotalCells())
	for i := range v {
		pos := g.CellPos(i)
		z := float64(pos[dir]) * as
		w := p.profile(z, t)
		ti := lattice.Index(lattice.ReduceGridPos(pos, dir), p.transverse)
		v[i] = p.phi[ti].Mult(-s.Coupling * w).Exp()
	}
	return v
}

// profile is 0 ahead of the sheet and 1 behind it.
func (p *LCPoisson) profile(z, t float64) float64 {
	o := float64(p.geo.Orientation)
	arg := o * (p.geo.Location + o*t - z) / p.geo.Width
	return distuv.UnitNormal.CDF(arg)
}
