package network

import (
	"github.com/san-kum/progs/internal/stellar"
)

// Sums holds per-zone composition aggregates.
type Sums struct {
	SumX []float64 // total mass fraction
	SumY []float64 // total mole fraction, sum X/A
	Ye   []float64 // electron fraction, sum X*Z/A
	Abar []float64 // mean mass number, SumX/SumY
}

func (s *Sums) Len() int { return len(s.SumX) }

// Table returns the sums as sumx, sumy, ye and abar columns.
func (s *Sums) Table() *stellar.Table {
	t := stellar.NewTable(s.Len())
	_ = t.Set("sumx", s.SumX)
	_ = t.Set("sumy", s.SumY)
	_ = t.Set("ye", s.Ye)
	_ = t.Set("abar", s.Abar)
	return t
}

// GetSums aggregates mass fractions over the network's isotopes, in
// network order. Abar is SumX/SumY: it equals 1/SumY only when SumX is one,
// and stays the mean mass number of an unnormalised zone (he4 at X=0.98
// gives 4, not 1/SumY = 4.08). A zone with no composition at all gets
// Abar = NaN rather than +Inf.
func GetSums(comp *stellar.Table, net Network) (*Sums, error) {
	n := comp.Len()
	s := &Sums{
		SumX: make([]float64, n),
		SumY: make([]float64, n),
		Ye:   make([]float64, n),
		Abar: make([]float64, n),
	}

	for _, iso := range net.Isotopes {
		x, err := comp.Column(iso.Name)
		if err != nil {
			return nil, err
		}
		a := float64(iso.A)
		za := float64(iso.Z) / a
		for i := 0; i < n; i++ {
			s.SumX[i] += x[i]
			s.SumY[i] += x[i] / a
			s.Ye[i] += x[i] * za
		}
	}

	for i := range s.Abar {
		s.Abar[i] = s.SumX[i] / s.SumY[i]
	}

	return s, nil
}

// SumIsotopes returns the elementwise sum of the named columns.
func SumIsotopes(t *stellar.Table, isotopes []string) ([]float64, error) {
	total := make([]float64, t.Len())
	for _, name := range isotopes {
		x, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i := range total {
			total[i] += x[i]
		}
	}
	return total, nil
}
