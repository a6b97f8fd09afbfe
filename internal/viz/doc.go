// Package viz is the terminal live view of a running experiment.
//
// [Model] is a Bubble Tea model that advances an experiment a few steps per
// frame and draws the field energy and charge profiles along one lattice
// axis on a braille [Canvas], next to the current metric values and an
// energy graph.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Steps per frame
//	A     - Cycle profile axis
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
