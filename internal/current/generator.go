package current

import (
	"errors"

	"github.com/san-kum/gaugesim/internal/sim"
)

// ErrDegenerateCharge is returned for a point charge without a color
// direction.
var ErrDegenerateCharge = errors.New("current: zero color direction")

// Generator deposits charge and current into the grid. InitializeCurrent is
// called once after the grid is set up; ApplyCurrent once per step after ρ
// and J have been reset.
type Generator interface {
	InitializeCurrent(s *sim.Simulation) error
	ApplyCurrent(s *sim.Simulation)
}

// Counter is implemented by generators built from particles.
type Counter interface {
	NumParticles() int
}
