package metrics

import (
	"math"

	"github.com/san-kum/progs/internal/progenitor"
	"github.com/san-kum/progs/internal/stellar"
)

// SumXDeviation is the largest |sumx - 1| over all zones.
type SumXDeviation struct{}

func NewSumXDeviation() *SumXDeviation { return &SumXDeviation{} }

func (s *SumXDeviation) Name() string { return "max_sumx_deviation" }

func (s *SumXDeviation) Evaluate(p *progenitor.Progenitor) (float64, error) {
	if p.Sums == nil || p.Sums.Len() == 0 {
		return 0, stellar.ErrEmptyTable
	}
	dev := 0.0
	for _, x := range p.Sums.SumX {
		dev = math.Max(dev, math.Abs(x-1))
	}
	return dev, nil
}

// Degenerate counts zones where a column is Inf or NaN.
type Degenerate struct {
	column string
}

func NewDegenerate(column string) *Degenerate { return &Degenerate{column: column} }

func (d *Degenerate) Name() string { return "degenerate_" + d.column }

func (d *Degenerate) Evaluate(p *progenitor.Progenitor) (float64, error) {
	col, err := p.Table.Column(d.column)
	if err != nil {
		return 0, err
	}
	return float64(len(stellar.Degenerate(col))), nil
}
