package config

import "sort"

var Presets = map[string]*Config{
	"sheet": {
		Name:   "sheet",
		Grid:   GridConfig{Cells: []int{64, 32}, Spacing: 1, Dt: 0.5, Coupling: 1, Colors: 1},
		Solver: "yangmills", Steps: 60, Seed: 1,
		Sheets: []SheetConfig{{
			Direction: 0, Orientation: 1, Location: 20, Width: 2,
			Charges: []ChargeConfig{
				{Location: []float64{10}, Color: []float64{1}, Magnitude: 1},
				{Location: []float64{21.5}, Color: []float64{1}, Magnitude: -1},
			},
		}},
	},
	"collision": {
		Name:   "collision",
		Grid:   GridConfig{Cells: []int{96, 32}, Spacing: 1, Dt: 0.5, Coupling: 1, Colors: 2},
		Solver: "yangmills", Steps: 120, Seed: 7,
		Sheets: []SheetConfig{
			{
				Direction: 0, Orientation: 1, Location: 30, Width: 2, RemoveMonopole: true,
				Random: &RandomChargeConfig{Count: 12, Magnitude: 1},
			},
			{
				Direction: 0, Orientation: -1, Location: 66, Width: 2, RemoveMonopole: true,
				Random: &RandomChargeConfig{Count: 12, Magnitude: 1},
			},
		},
	},
	"su2-sheet": {
		Name:   "su2-sheet",
		Grid:   GridConfig{Cells: []int{48, 16, 16}, Spacing: 1, Dt: 0.5, Coupling: 2, Colors: 2},
		Solver: "yangmills", Steps: 40, Seed: 3,
		Sheets: []SheetConfig{{
			Direction: 0, Orientation: 1, Location: 16, Width: 1.5,
			Charges: []ChargeConfig{
				{Location: []float64{4, 4}, Color: []float64{1, 0, 0}, Magnitude: 1},
				{Location: []float64{11, 4}, Color: []float64{0, 1, 0}, Magnitude: 1},
				{Location: []float64{7.5, 11}, Color: []float64{-1, -1, 0}, Magnitude: 1.41421356},
			},
		}},
	},
	"ballistic": {
		Name:   "ballistic",
		Grid:   GridConfig{Cells: []int{32, 32}, Spacing: 1, Dt: 0.5, Coupling: 1, Colors: 1},
		Solver: "leapfrog", Steps: 80, Seed: 1,
		Particles: []ParticleConfig{
			{Position: []float64{8, 16}, Velocity: []float64{0.6, 0.3}, Charge: []float64{1}},
			{Position: []float64{24, 16}, Velocity: []float64{-0.6, -0.3}, Charge: []float64{-1}},
		},
	},
	"pulse": {
		Name:   "pulse",
		Grid:   GridConfig{Cells: []int{64, 8}, Spacing: 1, Dt: 0.5, Coupling: 1, Colors: 2},
		Solver: "yangmills", Steps: 60, Seed: 1,
		Pulses: []PulseConfig{{
			Direction: []float64{1, 0}, Position: []float64{16, 0}, Polarization: []float64{0, 1},
			Color: []float64{0, 0, 1}, Amplitude: 0.2, Sigma: 3,
		}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
