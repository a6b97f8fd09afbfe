package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/sim"
)

// EnergyProfile sums the field energy density over each plane orthogonal
// to axis. The result has one entry per cell along axis and adds up to the
// total field energy.
func EnergyProfile(s *sim.Simulation, axis int) ([]float64, error) {
	g := s.Grid
	dims := g.Dimensions()
	if axis < 0 || axis >= dims {
		return nil, fmt.Errorf("%w: axis %d on a %d-dimensional grid", sim.ErrInvalidParameter, axis, dims)
	}
	profile := make([]float64, g.NumCellsAlong(axis))
	for i := 0; i < g.TotalCells(); i++ {
		e := 0.0
		for d := 0; d < dims; d++ {
			e += g.E(i, d).Square()
		}
		for c := 0; c < 3; c++ {
			e += g.B(i, c).Square()
		}
		profile[g.CellPos(i)[axis]] += e
	}
	floats.Scale(0.5*g.CellVolume(), profile)
	return profile, nil
}

// ChargeProfile sums |ρ|² over each plane orthogonal to axis.
func ChargeProfile(s *sim.Simulation, axis int) ([]float64, error) {
	g := s.Grid
	if axis < 0 || axis >= g.Dimensions() {
		return nil, fmt.Errorf("%w: axis %d on a %d-dimensional grid", sim.ErrInvalidParameter, axis, g.Dimensions())
	}
	profile := make([]float64, g.NumCellsAlong(axis))
	for i := 0; i < g.TotalCells(); i++ {
		profile[g.CellPos(i)[axis]] += g.Rho(i).Square()
	}
	return profile, nil
}

// Centroid is the weighted mean position of a profile with cell spacing
// as. It is NaN for an all-zero profile.
func Centroid(profile []float64, as float64) float64 {
	pos := make([]float64, len(profile))
	for i := range pos {
		pos[i] = float64(i) * as
	}
	total := floats.Sum(profile)
	return floats.Dot(pos, profile) / total
}
