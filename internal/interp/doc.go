// Package interp deposits point charges onto the lattice with cloud-in-cell
// weights and their currents with the charge-conserving area weighting
// scheme, for abelian test particles.
package interp
