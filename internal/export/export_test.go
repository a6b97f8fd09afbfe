package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gaugesim/internal/experiment"
)

func testSeries() *experiment.Series {
	return &experiment.Series{
		Names:  []string{"electric_energy", "magnetic_energy"},
		Steps:  []int{0, 1, 2, 3},
		Times:  []float64{0, 0.5, 1, 1.5},
		Values: [][]float64{{1, 0}, {0.8, 0.2}, {0.5, 0.5}, {0.2, 0.8}},
	}
}

func TestSeriesPNG(t *testing.T) {
	p, err := SeriesPlot(testSeries(), "energies")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "energies.png")
	if err := SavePNG(p, path, 0, 0); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty png")
	}
}

func TestSeriesPlotUnknownMetric(t *testing.T) {
	if _, err := SeriesPlot(testSeries(), "x", "particles"); err == nil {
		t.Error("expected error for a missing metric")
	}
}

func TestProfilePlot(t *testing.T) {
	p, err := ProfilePlot([]float64{0, 1, 4, 1, 0}, 0.5, "profile")
	if err != nil {
		t.Fatal(err)
	}
	if p.X.Max != 2 {
		t.Errorf("expected x range up to 2, got %g", p.X.Max)
	}
}

func TestLineSVG(t *testing.T) {
	svg, err := LineSVG([]float64{0, 1, 2}, []float64{0, 1, 0}, 100, 50, "#00ff00")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg document")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}

	if _, err := LineSVG([]float64{0}, []float64{0}, 10, 10, "#fff"); err == nil {
		t.Error("expected error for a single point")
	}
	if _, err := LineSVG([]float64{0, 1}, []float64{0}, 10, 10, "#fff"); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}
