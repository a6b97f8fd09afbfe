// Package current implements current generators: sources that write ρ and J
// into the grid once per step, before the field solver runs.
//
// LCCurrent samples the Gauss constraint of a light-cone sheet with one
// colored particle per lattice site and moves the particles along the
// propagation axis. Color charges are parallel transported with the links
// they cross (Wong's equations) and deposited so that the covariant
// continuity equation holds exactly. Particles leaving the box are dropped
// together with their charge; Removed reports how many.
//
// Ballistic moves abelian test particles on straight lines through a
// periodic box using charge-conserving area weighting.
package current
