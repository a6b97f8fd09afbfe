// Package metrics provides field and charge measurements recorded after
// every step: energies, the violation of Gauss's law, the total charge and
// the number of live particles.
package metrics
