package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/gaugesim/internal/experiment"
)

const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// SeriesPlot draws the named metrics of a series against simulation time.
// All metrics are drawn when names is empty.
func SeriesPlot(series *experiment.Series, title string, names ...string) (*plot.Plot, error) {
	if len(names) == 0 {
		names = series.Names
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "value"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, name := range names {
		col := series.Column(name)
		if col == nil {
			return nil, fmt.Errorf("series has no metric %q", name)
		}
		pts := make(plotter.XYs, len(col))
		for j, v := range col {
			pts[j] = plotter.XY{X: series.Times[j], Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	return p, nil
}

// ProfilePlot draws a longitudinal profile with cell spacing as.
func ProfilePlot(profile []float64, as float64, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(profile))
	for i, v := range profile {
		pts[i] = plotter.XY{X: float64(i) * as, Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	return p, nil
}

// SavePNG writes p to path. The format follows the file extension, so .svg
// and .pdf work too.
func SavePNG(p *plot.Plot, path string, width, height vg.Length) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return p.Save(width, height, path)
}
