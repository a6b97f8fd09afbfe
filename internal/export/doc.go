// Package export renders recorded series and field profiles to image files
// with gonum/plot, and small self-contained SVG line charts.
package export
