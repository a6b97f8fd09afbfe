package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k|² for k = 0..n/2 of the mean-free signal.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	centered := make([]float64, len(data))
	copy(centered, data)
	floats.AddConst(-stat.Mean(data, nil), centered)

	x := fft.FFTReal(centered)
	ps := make([]float64, len(x)/2+1)
	for k := range ps {
		a := cmplx.Abs(x[k])
		ps[k] = a * a
	}
	return ps
}

// DominantFrequency returns the frequency of the strongest non-constant
// mode of a series sampled every dt, and its power.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, 0
	}
	k := floats.MaxIdx(ps[1:]) + 1
	return float64(k) / (float64(len(data)) * dt), ps[k]
}
