package color

import "gonum.org/v1/gonum/num/quat"

type su2Factory struct{}

func (su2Factory) Colors() int     { return 2 }
func (su2Factory) Components() int { return 3 }
func (su2Factory) Zero() Algebra   { return &SU2Algebra{} }
func (su2Factory) Identity() Group { return SU2Group{q: quat.Number{Real: 1}} }

// SU2Algebra holds the three components of a = a_k σ_k/2.
type SU2Algebra struct {
	v [3]float64
}

func (a *SU2Algebra) Components() int      { return 3 }
func (a *SU2Algebra) Get(i int) float64    { return a.v[i] }
func (a *SU2Algebra) Set(i int, v float64) { a.v[i] = v }
func (a *SU2Algebra) Clear()               { a.v = [3]float64{} }
func (a *SU2Algebra) Copy() Algebra        { c := *a; return &c }

func (a *SU2Algebra) Add(b Algebra) Algebra {
	o := b.(*SU2Algebra)
	return &SU2Algebra{[3]float64{a.v[0] + o.v[0], a.v[1] + o.v[1], a.v[2] + o.v[2]}}
}

func (a *SU2Algebra) AddAssign(b Algebra) {
	o := b.(*SU2Algebra)
	a.v[0] += o.v[0]
	a.v[1] += o.v[1]
	a.v[2] += o.v[2]
}

func (a *SU2Algebra) Sub(b Algebra) Algebra {
	o := b.(*SU2Algebra)
	return &SU2Algebra{[3]float64{a.v[0] - o.v[0], a.v[1] - o.v[1], a.v[2] - o.v[2]}}
}

func (a *SU2Algebra) Mult(s float64) Algebra {
	return &SU2Algebra{[3]float64{a.v[0] * s, a.v[1] * s, a.v[2] * s}}
}

func (a *SU2Algebra) Square() float64 {
	return a.v[0]*a.v[0] + a.v[1]*a.v[1] + a.v[2]*a.v[2]
}

// Act rotates the component vector: g·a·g† on the imaginary quaternion.
func (a *SU2Algebra) Act(g Group) Algebra {
	u := g.(SU2Group).q
	p := quat.Number{Imag: a.v[0], Jmag: a.v[1], Kmag: a.v[2]}
	r := quat.Mul(quat.Mul(u, p), quat.Conj(u))
	return &SU2Algebra{[3]float64{r.Imag, r.Jmag, r.Kmag}}
}

func (a *SU2Algebra) Exp() Group {
	return SU2Group{q: quat.Exp(quat.Number{Imag: a.v[0] / 2, Jmag: a.v[1] / 2, Kmag: a.v[2] / 2})}
}

// SU2Group is a unit quaternion.
type SU2Group struct {
	q quat.Number
}

// NewSU2 normalizes q onto the unit sphere.
func NewSU2(q quat.Number) SU2Group {
	n := quat.Abs(q)
	if n == 0 {
		return SU2Group{q: quat.Number{Real: 1}}
	}
	return SU2Group{q: quat.Scale(1/n, q)}
}

func (g SU2Group) Quaternion() quat.Number { return g.q }

func (g SU2Group) Mult(h Group) Group { return SU2Group{q: quat.Mul(g.q, h.(SU2Group).q)} }
func (g SU2Group) Adj() Group         { return SU2Group{q: quat.Conj(g.q)} }

func (g SU2Group) Log() Algebra {
	l := quat.Log(g.q)
	return &SU2Algebra{[3]float64{2 * l.Imag, 2 * l.Jmag, 2 * l.Kmag}}
}

func (g SU2Group) Proj() Algebra {
	return &SU2Algebra{[3]float64{2 * g.q.Imag, 2 * g.q.Jmag, 2 * g.q.Kmag}}
}
