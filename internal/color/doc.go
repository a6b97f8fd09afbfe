// Package color implements the Lie algebra and Lie group arithmetic used by
// the lattice gauge fields and the colored particles.
//
// Two gauge groups are available:
//
//   - U(1): one algebra component, group elements are unit complex numbers
//   - SU(2): three algebra components, group elements are unit quaternions
//
// Algebra elements carry electric fields and color charges. Group elements
// are gauge links, the parallel transporters between neighbouring sites.
//
// # Example
//
//	f, _ := color.NewFactory(2)
//	q := f.Zero()
//	q.Set(2, 1.0)
//	u := f.Zero()
//	u.Set(0, 0.3)
//	rotated := q.Act(u.Exp())
//
// # Conventions
//
// Exp maps an algebra element a to the group element exp(i a·T) with the
// generators T normalized so that Act(g) is the adjoint action g·a·g†.
// Log is the inverse of Exp on the principal branch.
package color
