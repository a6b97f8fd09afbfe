package interp

import (
	"math"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/lattice"
)

// DepositCharge adds q to ρ on the 2^D corners of the cell containing pos,
// weighted by the usual multilinear cloud-in-cell fractions.
func DepositCharge(g *lattice.Grid, pos []float64, q color.Algebra) {
	dims := g.Dimensions()
	as := g.Spacing()
	cell := make([]int, dims)
	frac := make([]float64, dims)
	for d := 0; d < dims; d++ {
		f := pos[d] / as
		c := math.Floor(f)
		cell[d] = int(c)
		frac[d] = f - c
	}

	corner := make([]int, dims)
	for mask := 0; mask < 1<<dims; mask++ {
		w := 1.0
		for d := 0; d < dims; d++ {
			if mask&(1<<d) != 0 {
				corner[d] = cell[d] + 1
				w *= frac[d]
			} else {
				corner[d] = cell[d]
				w *= 1 - frac[d]
			}
		}
		g.AddRho(g.CellIndex(corner), q.Mult(w))
	}
}

// Deposit adds the current of a charge q moving in a straight line from
// `from` to `to` during dt. The move is split at every cell boundary it
// crosses; each piece is deposited within a single cell, so the change of
// the cloud-in-cell ρ at every site equals -(dt/as)·div J exactly.
func Deposit(g *lattice.Grid, from, to []float64, q color.Algebra, dt float64) {
	dims := g.Dimensions()
	as := g.Spacing()

	cur := append([]float64(nil), from...)
	cell := lattice.FlooredGridPoint(cur, as)
	target := lattice.FlooredGridPoint(to, as)
	next := make([]float64, dims)

	for {
		axis, t := -1, math.Inf(1)
		for d := 0; d < dims; d++ {
			if cell[d] == target[d] {
				continue
			}
			boundary := float64(cell[d]) * as
			if target[d] > cell[d] {
				boundary += as
			}
			if s := (boundary - cur[d]) / (to[d] - cur[d]); s < t {
				axis, t = d, s
			}
		}
		if axis < 0 {
			depositSegment(g, cell, cur, to, q, dt)
			return
		}

		for d := 0; d < dims; d++ {
			next[d] = cur[d] + t*(to[d]-cur[d])
		}
		next[axis] = float64(cell[axis]) * as
		if target[axis] > cell[axis] {
			next[axis] += as
		}
		depositSegment(g, cell, cur, next, q, dt)

		if target[axis] > cell[axis] {
			cell[axis]++
		} else {
			cell[axis]--
		}
		copy(cur, next)
	}
}

// depositSegment handles a piece of the move that stays inside one cell.
func depositSegment(g *lattice.Grid, cell []int, a, b []float64, q color.Algebra, dt float64) {
	dims := g.Dimensions()
	as := g.Spacing()

	mid := make([]float64, dims)
	delta := make([]float64, dims)
	for d := 0; d < dims; d++ {
		f0 := a[d]/as - float64(cell[d])
		f1 := b[d]/as - float64(cell[d])
		mid[d] = clamp(0.5 * (f0 + f1))
		delta[d] = (b[d] - a[d]) / as
	}

	corner := make([]int, dims)
	for axis := 0; axis < dims; axis++ {
		if delta[axis] == 0 {
			continue
		}
		flux := q.Mult(delta[axis] * as / dt)
		for mask := 0; mask < 1<<dims; mask++ {
			if mask&(1<<axis) != 0 {
				continue
			}
			w := 1.0
			for d := 0; d < dims; d++ {
				corner[d] = cell[d]
				if d == axis {
					continue
				}
				if mask&(1<<d) != 0 {
					corner[d]++
					w *= mid[d]
				} else {
					w *= 1 - mid[d]
				}
			}
			if dims == 3 {
				w += correction(axis, mask, delta)
			}
			g.AddJ(g.CellIndex(corner), axis, flux.Mult(w))
		}
	}
}

// correction is the second-order term of the 3D weights, ±Δy·Δz/12 for J_x
// and cyclic, positive on the diagonal corners.
func correction(axis, mask int, delta []float64) float64 {
	u, v := (axis+1)%3, (axis+2)%3
	c := delta[u] * delta[v] / 12
	if (mask>>u)&1 != (mask>>v)&1 {
		return -c
	}
	return c
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
