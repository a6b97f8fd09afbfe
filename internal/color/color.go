package color

import (
	"errors"
	"fmt"
)

// ErrUnsupportedColors is returned for a number of colors without a group
// implementation.
var ErrUnsupportedColors = errors.New("color: unsupported number of colors")

// Algebra is a Lie algebra element in the adjoint representation.
// Add, Sub, Mult and Act return new elements; AddAssign, Set and Clear
// mutate the receiver.
type Algebra interface {
	Components() int
	Get(i int) float64
	Set(i int, v float64)
	Clear()
	Add(b Algebra) Algebra
	AddAssign(b Algebra)
	Sub(b Algebra) Algebra
	Mult(s float64) Algebra
	Square() float64
	Act(g Group) Algebra
	Exp() Group
	Copy() Algebra
}

// Group is an immutable gauge group element.
type Group interface {
	Mult(h Group) Group
	Adj() Group
	Log() Algebra
	// Proj is the anti-Hermitian traceless projection expressed in algebra
	// components. It agrees with Log to first order around the identity.
	Proj() Algebra
}

// Factory creates zero and identity elements for one gauge group.
type Factory interface {
	Colors() int
	Components() int
	Zero() Algebra
	Identity() Group
}

// NewFactory returns the factory for U(1) (colors == 1) or SU(2) (colors == 2).
func NewFactory(colors int) (Factory, error) {
	switch colors {
	case 1:
		return u1Factory{}, nil
	case 2:
		return su2Factory{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedColors, colors)
	}
}

// ComponentsFor is Nc²-1 for Nc > 1 and 1 for the abelian theory.
func ComponentsFor(colors int) int {
	if colors <= 1 {
		return 1
	}
	return colors*colors - 1
}

// Pow returns the fractional link g^d = exp(d·log g).
func Pow(g Group, d float64) Group {
	return g.Log().Mult(d).Exp()
}

// FromComponents builds an algebra element from a plain vector. Missing
// components stay zero, extra ones are ignored.
func FromComponents(f Factory, v []float64) Algebra {
	a := f.Zero()
	for i := 0; i < a.Components() && i < len(v); i++ {
		a.Set(i, v[i])
	}
	return a
}

// Components returns the components of a as a plain vector.
func Components(a Algebra) []float64 {
	v := make([]float64, a.Components())
	for i := range v {
		v[i] = a.Get(i)
	}
	return v
}
