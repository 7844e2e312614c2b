package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/progs/internal/progenitor"
	"github.com/san-kum/progs/internal/quantities"
	"github.com/san-kum/progs/internal/stellar"
)

// CompactnessAt is xi evaluated at a fixed enclosed mass.
type CompactnessAt struct {
	name string
	mass float64
}

func NewCompactnessAt(mass float64) *CompactnessAt {
	return &CompactnessAt{
		name: fmt.Sprintf("xi_%.1f", mass),
		mass: mass,
	}
}

func (c *CompactnessAt) Name() string { return c.name }

func (c *CompactnessAt) Evaluate(p *progenitor.Progenitor) (float64, error) {
	mass, err := p.Table.Column("mass")
	if err != nil {
		return 0, err
	}
	radius, err := p.Table.Column("radius")
	if err != nil {
		return 0, err
	}
	return quantities.CompactnessAt(c.mass, mass, radius)
}

// TotalMass is the outermost enclosed mass in Msun.
type TotalMass struct{}

func NewTotalMass() *TotalMass { return &TotalMass{} }

func (t *TotalMass) Name() string { return "total_mass" }

func (t *TotalMass) Evaluate(p *progenitor.Progenitor) (float64, error) {
	mass, err := p.Table.Column("mass")
	if err != nil {
		return 0, err
	}
	if len(mass) == 0 {
		return 0, stellar.ErrEmptyTable
	}
	return math.Max(mass[0], mass[len(mass)-1]), nil
}

// Central is the value of a column in the innermost zone, taken as the
// zone with the smallest radius.
type Central struct {
	column string
}

func NewCentral(column string) *Central { return &Central{column: column} }

func (c *Central) Name() string { return "central_" + c.column }

func (c *Central) Evaluate(p *progenitor.Progenitor) (float64, error) {
	col, err := p.Table.Column(c.column)
	if err != nil {
		return 0, err
	}
	if len(col) == 0 {
		return 0, stellar.ErrEmptyTable
	}
	radius, err := p.Table.Column("radius")
	if err != nil {
		return 0, err
	}
	if radius[len(radius)-1] < radius[0] {
		return col[len(col)-1], nil
	}
	return col[0], nil
}
