package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gaugesim/internal/experiment"
)

type ExportData struct {
	Run    RunMetadata          `json:"run"`
	Steps  []int                `json:"steps"`
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a stored run with its series split into one array per
// metric.
func ExportJSON(w io.Writer, meta *RunMetadata, series *experiment.Series) error {
	data := ExportData{
		Run:    *meta,
		Steps:  series.Steps,
		Times:  series.Times,
		Series: make(map[string][]float64, len(series.Names)),
	}
	for _, name := range series.Names {
		data.Series[name] = series.Column(name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
