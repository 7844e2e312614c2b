package storage

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/progs/internal/progenitor"
)

type ExportData struct {
	Series   string                `json:"series"`
	ZAMS     string                `json:"zams"`
	Network  string                `json:"network"`
	Zones    int                   `json:"zones"`
	Columns  []string              `json:"columns"`
	Profile  map[string][]*float64 `json:"profile"`
	Isotopes []string              `json:"isotopes"`
	Metrics  map[string]float64    `json:"metrics"`
}

// nullable maps non-finite values to nil so they encode as JSON null.
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		out[i] = &values[i]
	}
	return out
}

func ExportJSON(w io.Writer, p *progenitor.Progenitor, metrics map[string]float64) error {
	data := ExportData{
		Series:   p.Series,
		ZAMS:     p.ZAMS,
		Network:  p.Network.Name,
		Zones:    p.Zones(),
		Columns:  p.Table.Columns(),
		Profile:  make(map[string][]*float64),
		Isotopes: p.Network.Names(),
		Metrics:  finiteMetrics(metrics),
	}

	for _, name := range data.Columns {
		col, err := p.Table.Column(name)
		if err != nil {
			return err
		}
		data.Profile[name] = nullable(col)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
