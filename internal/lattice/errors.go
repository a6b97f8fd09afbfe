package lattice

import "errors"

var (
	// ErrUnsupportedDimension indicates an operation defined only for some
	// numbers of spatial dimensions.
	ErrUnsupportedDimension = errors.New("lattice: unsupported number of dimensions")

	// ErrInvalidGrid indicates a non-positive cell count or lattice spacing.
	ErrInvalidGrid = errors.New("lattice: invalid grid geometry")
)
