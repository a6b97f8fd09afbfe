package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/sim"
)

// ElectricEnergy is ½·Σ|E|²·as^D.
type ElectricEnergy struct {
	value float64
}

func NewElectricEnergy() *ElectricEnergy { return &ElectricEnergy{} }

func (e *ElectricEnergy) Name() string              { return "electric_energy" }
func (e *ElectricEnergy) Observe(s *sim.Simulation) { e.value = ElectricFieldEnergy(s) }
func (e *ElectricEnergy) Value() float64            { return e.value }
func (e *ElectricEnergy) Reset()                    { e.value = 0 }

// MagneticEnergy is ½·Σ|B|²·as^D over the three stored components.
type MagneticEnergy struct {
	value float64
}

func NewMagneticEnergy() *MagneticEnergy { return &MagneticEnergy{} }

func (m *MagneticEnergy) Name() string              { return "magnetic_energy" }
func (m *MagneticEnergy) Observe(s *sim.Simulation) { m.value = MagneticFieldEnergy(s) }
func (m *MagneticEnergy) Value() float64            { return m.value }
func (m *MagneticEnergy) Reset()                    { m.value = 0 }

type TotalEnergy struct {
	value float64
}

func NewTotalEnergy() *TotalEnergy { return &TotalEnergy{} }

func (t *TotalEnergy) Name() string { return "total_energy" }
func (t *TotalEnergy) Observe(s *sim.Simulation) {
	t.value = ElectricFieldEnergy(s) + MagneticFieldEnergy(s)
}
func (t *TotalEnergy) Value() float64 { return t.value }
func (t *TotalEnergy) Reset()         { t.value = 0 }

// EnergyDrift tracks the largest relative deviation of the total field
// energy from its first observation.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *sim.Simulation) {
	energy := ElectricFieldEnergy(s) + MagneticFieldEnergy(s)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

func ElectricFieldEnergy(s *sim.Simulation) float64 {
	g := s.Grid
	dims := g.Dimensions()
	sq := make([]float64, g.TotalCells()*dims)
	for i := 0; i < g.TotalCells(); i++ {
		for d := 0; d < dims; d++ {
			sq[i*dims+d] = g.E(i, d).Square()
		}
	}
	return 0.5 * floats.Sum(sq) * g.CellVolume()
}

func MagneticFieldEnergy(s *sim.Simulation) float64 {
	g := s.Grid
	sq := make([]float64, g.TotalCells()*3)
	for i := 0; i < g.TotalCells(); i++ {
		for c := 0; c < 3; c++ {
			sq[i*3+c] = g.B(i, c).Square()
		}
	}
	return 0.5 * floats.Sum(sq) * g.CellVolume()
}
