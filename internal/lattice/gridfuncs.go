package lattice

import "math"

// FlooredGridPoint returns the lattice coordinates of the site at or below
// a physical position.
func FlooredGridPoint(pos []float64, spacing float64) []int {
	p := make([]int, len(pos))
	for i, x := range pos {
		p[i] = int(math.Floor(x / spacing))
	}
	return p
}

// NearestGridPoint rounds a physical position to the closest site.
func NearestGridPoint(pos []float64, spacing float64) []int {
	p := make([]int, len(pos))
	for i, x := range pos {
		p[i] = int(math.Round(x / spacing))
	}
	return p
}

// ReduceGridPos drops the entry for one axis.
func ReduceGridPos(pos []int, direction int) []int {
	r := make([]int, 0, len(pos)-1)
	for i, v := range pos {
		if i != direction {
			r = append(r, v)
		}
	}
	return r
}

// InsertGridPos is the inverse of ReduceGridPos.
func InsertGridPos(pos []int, direction, value int) []int {
	r := make([]int, 0, len(pos)+1)
	r = append(r, pos[:direction]...)
	r = append(r, value)
	return append(r, pos[direction:]...)
}

// TotalCells is the product of the cell counts.
func TotalCells(numCells []int) int {
	n := 1
	for _, c := range numCells {
		n *= c
	}
	return n
}

// Index flattens coordinates row-major with periodic wrap-around.
func Index(pos []int, numCells []int) int {
	idx := 0
	for i, n := range numCells {
		idx = idx*n + mod(pos[i], n)
	}
	return idx
}

// Pos is the inverse of Index.
func Pos(index int, numCells []int) []int {
	p := make([]int, len(numCells))
	for i := len(numCells) - 1; i >= 0; i-- {
		p[i] = index % numCells[i]
		index /= numCells[i]
	}
	return p
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
