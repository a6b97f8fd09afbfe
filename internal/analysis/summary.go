package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Samples int
	Mean    float64
	Std     float64
	Min     float64
	Max     float64
	// Drift is (last - first) / |first|, or last - first when first is 0.
	Drift float64
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	first, last := values[0], values[len(values)-1]
	drift := last - first
	if first != 0 {
		drift /= math.Abs(first)
	}
	return Summary{
		Samples: len(values),
		Mean:    mean,
		Std:     std,
		Min:     floats.Min(values),
		Max:     floats.Max(values),
		Drift:   drift,
	}
}
