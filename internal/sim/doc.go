// Package sim holds the simulation context shared by the field solvers and
// the current generators.
//
// A [Simulation] bundles the lattice with the time step, coupling constant
// and step counter. It is passed explicitly into every solver and generator
// call; nothing in the core keeps global state.
//
// # Step ordering
//
// One step consists of, in order:
//
//  1. resetting ρ and J on the grid
//  2. every current generator evolving its particles and depositing ρ, J
//  3. the field solver advancing E and the links
//  4. advancing the step counter
//
// # Thread Safety
//
// Simulation values are NOT thread-safe. [ParallelFor] is used internally
// for loops whose iterations write disjoint cells.
package sim
