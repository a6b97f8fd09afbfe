package fields

import (
	"fmt"
	"strings"

	"github.com/san-kum/gaugesim/internal/sim"
)

type Kind int

const (
	Leapfrog Kind = iota
	YangMills
)

var kindNames = map[Kind]string{
	Leapfrog:  "leapfrog",
	YangMills: "yangmills",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration name onto a solver kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown solver %q", sim.ErrInvalidParameter, name)
}

// Kinds lists the solver names accepted by ParseKind.
func Kinds() []string {
	return []string{Leapfrog.String(), YangMills.String()}
}

type Solver struct {
	kind Kind
}

// New checks that the solver kind supports dims spatial dimensions.
func New(kind Kind, dims int) (*Solver, error) {
	switch kind {
	case Leapfrog:
		if dims != 2 && dims != 3 {
			return nil, fmt.Errorf("%w: leapfrog solver needs 2 or 3 dimensions, got %d", sim.ErrUnsupportedDimension, dims)
		}
	case YangMills:
		if dims < 1 {
			return nil, fmt.Errorf("%w: %d", sim.ErrUnsupportedDimension, dims)
		}
	default:
		return nil, fmt.Errorf("%w: solver kind %d", sim.ErrInvalidParameter, int(kind))
	}
	return &Solver{kind: kind}, nil
}

func (s *Solver) Kind() Kind { return s.kind }

// Init seeds B from the links at t = Δt/2. Initial conditions write only
// links and E, so it runs once after they are applied and before the first
// Step.
func (s *Solver) Init(sm *sim.Simulation) {
	refreshMagneticField(sm)
}

// Step advances E and the links from t to t+Δt in place, consuming the J
// deposited for this step.
func (s *Solver) Step(sm *sim.Simulation) {
	switch s.kind {
	case Leapfrog:
		stepLeapfrog(sm)
	case YangMills:
		stepYangMills(sm)
	}
}
