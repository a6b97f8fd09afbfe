package current

import (
	"math"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/lattice"
)

// Density is a color charge density on the transverse grid, in units of
// charge per transverse cell area.
type Density struct {
	Cells    []color.Algebra
	NumCells []int
	Spacing  float64

	factory color.Factory
}

func NewDensity(numCells []int, spacing float64, f color.Factory) *Density {
	cells := make([]color.Algebra, lattice.TotalCells(numCells))
	for i := range cells {
		cells[i] = f.Zero()
	}
	return &Density{
		Cells:    cells,
		NumCells: append([]int(nil), numCells...),
		Spacing:  spacing,
		factory:  f,
	}
}

// Deposit smears q over the corners of the transverse cell containing
// location with cloud-in-cell weights.
func (d *Density) Deposit(location []float64, q color.Algebra) {
	dims := len(d.NumCells)
	base := lattice.FlooredGridPoint(location, d.Spacing)
	corner := make([]int, dims)
	for mask := 0; mask < 1<<dims; mask++ {
		w := 1.0
		for k := 0; k < dims; k++ {
			corner[k] = base[k]
			if mask&(1<<k) != 0 {
				corner[k]++
			}
			w *= 1 - math.Abs(float64(corner[k])-location[k]/d.Spacing)
		}
		d.Cells[lattice.Index(corner, d.NumCells)].AddAssign(q.Mult(w))
	}
}

func (d *Density) TotalCharge() color.Algebra {
	total := d.factory.Zero()
	for _, q := range d.Cells {
		total.AddAssign(q)
	}
	return total
}

// CenterOfAbsCharge weights positions by |ρ_c|. NaN when that component
// vanishes everywhere.
func (d *Density) CenterOfAbsCharge(c int) []float64 {
	return d.center(func(q color.Algebra) float64 { return math.Abs(q.Get(c)) })
}

// CenterOfInvariantCharge weights positions by the invariant charge |ρ|.
// NaN on an empty density.
func (d *Density) CenterOfInvariantCharge() []float64 {
	return d.center(func(q color.Algebra) float64 { return math.Sqrt(q.Square()) })
}

// AverageDistance is the |ρ_c|-weighted mean distance from the center of
// absolute charge, a rough size of the distribution.
func (d *Density) AverageDistance(c int) float64 {
	center := d.CenterOfAbsCharge(c)
	sum, total := 0.0, 0.0
	for i, q := range d.Cells {
		w := math.Abs(q.Get(c))
		total += w
		sum += w * d.distance(i, center)
	}
	return sum / total
}

// DipoleMoment is Σ ρ_c·x over the transverse grid.
func (d *Density) DipoleMoment(c int) []float64 {
	m := make([]float64, len(d.NumCells))
	for i, q := range d.Cells {
		pos := lattice.Pos(i, d.NumCells)
		for k := range m {
			m[k] += q.Get(c) * float64(pos[k]) * d.Spacing
		}
	}
	return m
}

// RemoveMonopoleMoment subtracts the mean charge from every cell.
func (d *Density) RemoveMonopoleMoment() {
	mean := d.TotalCharge().Mult(1 / float64(len(d.Cells)))
	for i := range d.Cells {
		d.Cells[i] = d.Cells[i].Sub(mean)
	}
}

// RemoveDipoleMoment adds, per color component, a pair of opposite charges
// around the center of absolute charge whose dipole moment cancels the
// density's. Components without charge are left alone.
func (d *Density) RemoveDipoleMoment() {
	dims := len(d.NumCells)
	for c := 0; c < d.factory.Components(); c++ {
		center := d.CenterOfAbsCharge(c)
		avg := d.AverageDistance(c)
		if math.IsNaN(avg) || avg == 0 {
			continue
		}

		dipole := make([]float64, dims)
		charge := 0.0
		for i, q := range d.Cells {
			pos := lattice.Pos(i, d.NumCells)
			for k := range dipole {
				dipole[k] += q.Get(c) * (float64(pos[k])*d.Spacing - center[k])
			}
			charge += q.Get(c) * d.distance(i, center) / avg
		}
		if charge == 0 {
			continue
		}

		p1 := append([]float64(nil), center...)
		p2 := append([]float64(nil), center...)
		for k := range dipole {
			dipole[k] /= charge * avg
			p1[k] += dipole[k] * avg / 2
			p2[k] -= dipole[k] * avg / 2
		}

		q1 := d.factory.Zero()
		q2 := d.factory.Zero()
		q1.Set(c, -charge)
		q2.Set(c, charge)
		d.Deposit(p1, q1)
		d.Deposit(p2, q2)
	}
}

func (d *Density) center(weight func(color.Algebra) float64) []float64 {
	center := make([]float64, len(d.NumCells))
	total := 0.0
	for i, q := range d.Cells {
		w := weight(q)
		total += w
		pos := lattice.Pos(i, d.NumCells)
		for k := range center {
			center[k] += w * float64(pos[k]) * d.Spacing
		}
	}
	for k := range center {
		center[k] /= total
	}
	return center
}

func (d *Density) distance(i int, center []float64) float64 {
	pos := lattice.Pos(i, d.NumCells)
	sum := 0.0
	for k, x := range center {
		dx := float64(pos[k])*d.Spacing - x
		sum += dx * dx
	}
	return math.Sqrt(sum)
}
