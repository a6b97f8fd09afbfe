package initial

import (
	"fmt"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/sim"
)

// Solver prepares initial fields from a charge distribution and reports the
// charge they imply.
type Solver interface {
	Initialize(s *sim.Simulation) error
	Solve(s *sim.Simulation) error
	GaussConstraint(i int) color.Algebra
}

// Geometry describes a sheet moving along Direction with velocity
// Orientation (±1), centered at Location at t = 0.
type Geometry struct {
	Direction   int
	Orientation int
	Location    float64
	Width       float64
}

func (g Geometry) Validate(dims int) error {
	if g.Direction < 0 || g.Direction >= dims {
		return fmt.Errorf("%w: direction %d outside [0, %d)", sim.ErrInvalidParameter, g.Direction, dims)
	}
	if g.Orientation != 1 && g.Orientation != -1 {
		return fmt.Errorf("%w: orientation must be ±1, got %d", sim.ErrInvalidParameter, g.Orientation)
	}
	if g.Width <= 0 {
		return fmt.Errorf("%w: longitudinal width must be positive, got %f", sim.ErrInvalidParameter, g.Width)
	}
	return nil
}
