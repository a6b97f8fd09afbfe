package initial

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/gaugesim/internal/lattice"
)

// SolvePoisson returns φ with -∇²φ = ρ on a periodic lattice, using the
// eigenvalues of the nearest-neighbour Laplacian. The zero mode of ρ (its
// mean) has no solution and is dropped.
func SolvePoisson(rho []float64, numCells []int, spacing float64) []float64 {
	total := lattice.TotalCells(numCells)
	phi := make([]float64, total)
	if len(numCells) == 0 {
		return phi
	}

	data := make([]complex128, total)
	for i, v := range rho {
		data[i] = complex(v, 0)
	}
	transform(data, numCells, false)

	as2 := spacing * spacing
	for i := range data {
		k := lattice.Pos(i, numCells)
		lambda := 0.0
		for a, n := range numCells {
			lambda += (2 - 2*math.Cos(2*math.Pi*float64(k[a])/float64(n))) / as2
		}
		if lambda < 1e-12/as2 {
			data[i] = 0
			continue
		}
		data[i] /= complex(lambda, 0)
	}

	transform(data, numCells, true)
	for i := range phi {
		phi[i] = real(data[i])
	}
	return phi
}

// transform applies a one-dimensional FFT along every axis in turn.
func transform(data []complex128, numCells []int, inverse bool) {
	total := len(data)
	stride := total
	for _, n := range numCells {
		stride /= n
		if n == 1 {
			continue
		}
		line := make([]complex128, n)
		for base := 0; base < total; base++ {
			if (base/stride)%n != 0 {
				continue
			}
			for k := 0; k < n; k++ {
				line[k] = data[base+k*stride]
			}
			var out []complex128
			if inverse {
				out = fft.IFFT(line)
			} else {
				out = fft.FFT(line)
			}
			for k := 0; k < n; k++ {
				data[base+k*stride] = out[k]
			}
		}
	}
}
