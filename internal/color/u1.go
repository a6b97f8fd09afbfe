package color

import "math/cmplx"

type u1Factory struct{}

func (u1Factory) Colors() int     { return 1 }
func (u1Factory) Components() int { return 1 }
func (u1Factory) Zero() Algebra   { return &U1Algebra{} }
func (u1Factory) Identity() Group { return U1Group(1) }

// U1Algebra is a real number; the adjoint action is trivial.
type U1Algebra struct {
	v float64
}

func (a *U1Algebra) Components() int { return 1 }

func (a *U1Algebra) Get(i int) float64 {
	if i != 0 {
		panic("color: u1 component out of range")
	}
	return a.v
}

func (a *U1Algebra) Set(i int, v float64) {
	if i != 0 {
		panic("color: u1 component out of range")
	}
	a.v = v
}

func (a *U1Algebra) Clear()                 { a.v = 0 }
func (a *U1Algebra) Add(b Algebra) Algebra  { return &U1Algebra{a.v + b.(*U1Algebra).v} }
func (a *U1Algebra) AddAssign(b Algebra)    { a.v += b.(*U1Algebra).v }
func (a *U1Algebra) Sub(b Algebra) Algebra  { return &U1Algebra{a.v - b.(*U1Algebra).v} }
func (a *U1Algebra) Mult(s float64) Algebra { return &U1Algebra{a.v * s} }
func (a *U1Algebra) Square() float64        { return a.v * a.v }
func (a *U1Algebra) Act(Group) Algebra      { return &U1Algebra{a.v} }
func (a *U1Algebra) Copy() Algebra          { return &U1Algebra{a.v} }
func (a *U1Algebra) Exp() Group             { return U1Group(cmplx.Rect(1, a.v)) }

// U1Group is a unit complex number exp(i·a).
type U1Group complex128

func (g U1Group) Mult(h Group) Group { return g * h.(U1Group) }
func (g U1Group) Adj() Group         { return U1Group(cmplx.Conj(complex128(g))) }
func (g U1Group) Log() Algebra       { return &U1Algebra{cmplx.Phase(complex128(g))} }

func (g U1Group) Proj() Algebra {
	// Im(g) = sin(phase) for a unit number; normalize against rounding drift.
	abs := cmplx.Abs(complex128(g))
	if abs == 0 {
		return &U1Algebra{}
	}
	return &U1Algebra{imag(complex128(g)) / abs}
}
