// Package fields advances the electric fields and gauge links by one time
// step.
//
// The solver kinds form a closed set selected by [Kind]:
//
//   - [Leapfrog]: the abelian Yee scheme, applied per algebra component with
//     centered differences. E lives at integer steps, B at half steps.
//   - [YangMills]: the link-based scheme. E is kicked by the plaquette force,
//     then every link is rotated by exp(-g·as·Δt·E).
//
// Both use the periodic neighbours of the lattice, so boundary cells are
// updated like every other cell.
package fields
