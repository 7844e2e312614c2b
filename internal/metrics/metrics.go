// Package metrics reduces a loaded progenitor to scalar summaries.
package metrics

import (
	"errors"
	"fmt"

	"github.com/san-kum/progs/internal/progenitor"
)

type Metric interface {
	Name() string
	Evaluate(p *progenitor.Progenitor) (float64, error)
}

func DefaultMetrics() []Metric {
	return []Metric{
		NewCompactnessAt(2.5),
		NewTotalMass(),
		NewCentral("temperature"),
		NewCentral("density"),
		NewSumXDeviation(),
		NewDegenerate("compactness"),
	}
}

// Summarize evaluates every metric. Failed metrics are left out of the map
// and reported together in the returned error.
func Summarize(p *progenitor.Progenitor, metrics []Metric) (map[string]float64, error) {
	values := make(map[string]float64, len(metrics))
	var errs []error
	for _, m := range metrics {
		v, err := m.Evaluate(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		values[m.Name()] = v
	}
	return values, errors.Join(errs...)
}

// Names returns the metric names in order.
func Names(metrics []Metric) []string {
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = m.Name()
	}
	return names
}
