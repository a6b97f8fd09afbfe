package metrics

import "github.com/san-kum/gaugesim/internal/sim"

// Metric reads the grid after a step. Value reports the latest observation
// unless the metric says otherwise.
type Metric interface {
	Name() string
	Observe(s *sim.Simulation)
	Value() float64
	Reset()
}

// Default returns the metrics recorded for every run.
func Default(counters ...Counter) []Metric {
	return []Metric{
		NewElectricEnergy(),
		NewMagneticEnergy(),
		NewTotalEnergy(),
		NewEnergyDrift(),
		NewGaussViolation(),
		NewTotalCharge(),
		NewParticles(counters...),
	}
}
