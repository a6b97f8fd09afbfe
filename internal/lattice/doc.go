// Package lattice holds the field state of a periodic hypercubic lattice.
//
// Every cell stores, per spatial direction d:
//
//   - E[d]: the electric field (an algebra element) on the link x → x+d
//   - U[d], Unext[d]: the gauge link at two consecutive half steps
//   - J[d]: the current accumulated during the last deposition pass
//
// plus the charge ρ and three magnetic components used by measurements and
// by the abelian leapfrog solver. Cells are addressed by a flat row-major
// index with the first axis varying slowest; all neighbour lookups wrap
// around periodically.
//
// Charges and currents are stored per cell (units of charge and
// charge·velocity), not as densities. Solvers divide by the cell volume.
package lattice
