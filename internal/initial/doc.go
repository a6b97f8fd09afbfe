// Package initial builds boost-invariant initial conditions for color
// sheets moving at the speed of light.
//
// A transverse charge density ρ⊥ is turned into a transverse potential φ by
// a lattice Poisson solve. The gauge field of the moving sheet is the pure
// gauge V = exp(-g·W(z,t)·φ(x⊥)) switched on by the profile W, a Gaussian
// CDF of the given longitudinal width centered on the sheet. Links are
// evaluated at t = ±Δt/2 and the electric field follows from their ratio,
// so E at t = 0 is consistent with the leapfrog staggering of the solvers.
//
// The charge implied by the resulting field configuration is exposed per
// lattice site through GaussConstraint; the particle current generator
// samples its particles from it.
package initial
