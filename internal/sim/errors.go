package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/gaugesim/internal/lattice"
)

// Domain errors for simulation operations.
var (
	// ErrUnsupportedDimension indicates a routine invoked in a dimensionality
	// it is not defined for.
	ErrUnsupportedDimension = lattice.ErrUnsupportedDimension

	// ErrInvalidParameter indicates a parameter value outside its valid range.
	ErrInvalidParameter = errors.New("sim: parameter out of valid bounds")

	// ErrUnstable indicates the field energy stopped being finite.
	ErrUnstable = errors.New("sim: simulation unstable (field energy diverged)")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: simulation canceled by context")
)

// StepError wraps an error with the step it occurred in.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
