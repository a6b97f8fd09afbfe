package fields

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/sim"
)

// PlanePulse is a Gaussian wave packet of width Sigma travelling along
// Direction, centered on Position at t = 0. The gauge field points along
// Polarization in space and along Color in the algebra.
type PlanePulse struct {
	Direction    []float64
	Position     []float64
	Polarization []float64
	Color        []float64
	Amplitude    float64
	Sigma        float64
}

// Apply adds the pulse to the grid: E at t = 0, links at t = ±dt/2. Links
// are left-multiplied so pulses superpose with existing configurations.
func (p PlanePulse) Apply(s *sim.Simulation) error {
	g := s.Grid
	dims := g.Dimensions()
	for name, v := range map[string][]float64{
		"direction":    p.Direction,
		"position":     p.Position,
		"polarization": p.Polarization,
	} {
		if len(v) != dims {
			return fmt.Errorf("%w: pulse %s has %d entries, grid has %d axes",
				sim.ErrInvalidParameter, name, len(v), dims)
		}
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: pulse width must be positive", sim.ErrInvalidParameter)
	}
	dir, err := normalized(p.Direction)
	if err != nil {
		return err
	}
	pol, err := normalized(p.Polarization)
	if err != nil {
		return err
	}
	col, err := normalized(p.Color)
	if err != nil {
		return err
	}

	amp := make([]color.Algebra, dims)
	for d := range amp {
		amp[d] = color.FromComponents(g.Factory(), col).Mult(p.Amplitude * pol[d])
	}

	as := g.Spacing()
	unit := s.Coupling * as
	half := 0.5 * s.Dt
	sigma2 := p.Sigma * p.Sigma
	profile := func(x float64) float64 { return math.Exp(-x * x / (2 * sigma2)) }

	for i := 0; i < g.TotalCells(); i++ {
		pos := g.CellPos(i)
		phase := 0.0
		for d, n := range pos {
			phase += dir[d] * (float64(n)*as - p.Position[d])
		}
		eFactor := -phase / sigma2 * profile(phase)
		for d := 0; d < dims; d++ {
			g.SetU(i, d, amp[d].Mult(unit*profile(phase-half)).Exp().Mult(g.U(i, d)))
			g.SetUnext(i, d, amp[d].Mult(unit*profile(phase+half)).Exp().Mult(g.Unext(i, d)))
			g.AddE(i, d, amp[d].Mult(eFactor))
		}
	}
	return nil
}

func normalized(v []float64) ([]float64, error) {
	n := floats.Norm(v, 2)
	if n == 0 {
		return nil, fmt.Errorf("%w: zero direction vector", sim.ErrInvalidParameter)
	}
	out := append([]float64(nil), v...)
	floats.Scale(1/n, out)
	return out, nil
}
