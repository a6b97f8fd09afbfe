package sim

import (
	"fmt"
	"runtime"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/lattice"
)

type Params struct {
	NumCells []int
	Spacing  float64
	Dt       float64
	Coupling float64
	Colors   int
	Workers  int
}

type Simulation struct {
	Grid     *lattice.Grid
	Dt       float64
	Coupling float64
	Colors   int
	Steps    int
	Workers  int
}

// New validates p and allocates the lattice.
func New(p Params) (*Simulation, error) {
	if p.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidParameter, p.Dt)
	}
	if p.Spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing must be positive, got %f", ErrInvalidParameter, p.Spacing)
	}
	if p.Dt > p.Spacing {
		// Particles move at the speed of light and may cross at most one
		// cell boundary per step.
		return nil, fmt.Errorf("%w: dt %f exceeds spacing %f", ErrInvalidParameter, p.Dt, p.Spacing)
	}
	if p.Coupling <= 0 {
		return nil, fmt.Errorf("%w: coupling must be positive, got %f", ErrInvalidParameter, p.Coupling)
	}

	f, err := color.NewFactory(p.Colors)
	if err != nil {
		return nil, err
	}
	g, err := lattice.New(p.NumCells, p.Spacing, f)
	if err != nil {
		return nil, err
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Simulation{
		Grid:     g,
		Dt:       p.Dt,
		Coupling: p.Coupling,
		Colors:   p.Colors,
		Workers:  workers,
	}, nil
}

func (s *Simulation) Spacing() float64      { return s.Grid.Spacing() }
func (s *Simulation) Dimensions() int       { return s.Grid.Dimensions() }
func (s *Simulation) Components() int       { return s.Grid.Factory().Components() }
func (s *Simulation) BoxSize(d int) float64 { return s.Grid.BoxSize(d) }
func (s *Simulation) Time() float64         { return float64(s.Steps) * s.Dt }
