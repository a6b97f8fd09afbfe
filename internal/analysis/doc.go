// Package analysis post-processes runs: spectra and summaries of recorded
// metric series, longitudinal profiles of the lattice fields and phase
// portraits of one metric against another.
//
// Recorded series come from experiment.Series or storage.LoadSeries:
//
//	s := analysis.Summarize(series.Column("total_energy"))
//	freq, _ := analysis.DominantFrequency(series.Column("electric_energy"), dt)
package analysis
