package progenitor

import (
	"fmt"

	"github.com/san-kum/progs/internal/config"
	"github.com/san-kum/progs/internal/loader"
	"github.com/san-kum/progs/internal/network"
	"github.com/san-kum/progs/internal/quantities"
	"github.com/san-kum/progs/internal/stellar"
	"github.com/san-kum/progs/internal/units"
)

// massColumns are read in grams and stored in solar masses.
var massColumns = map[string]bool{
	"mass":      true,
	"zone_mass": true,
}

// Assemble builds the profile table from a raw model.
func Assemble(raw *loader.Raw, cfg *config.Config, net network.Network) (*stellar.Table, error) {
	t := stellar.NewTable(raw.NumRows())

	for _, name := range cfg.ColumnNames() {
		values, err := raw.Float(cfg.Columns[name])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if massColumns[name] {
			for i := range values {
				values[i] *= units.GToMsun
			}
		}
		if err := t.Set(name, values); err != nil {
			return nil, err
		}
	}

	if err := AddDerivedColumns(t, cfg, net); err != nil {
		return nil, err
	}
	return t, nil
}

// AddDerivedColumns appends the configured derived columns to t, in the
// order they are listed.
func AddDerivedColumns(t *stellar.Table, cfg *config.Config, net network.Network) error {
	for _, name := range cfg.Load.DerivedColumns {
		var err error
		switch name {
		case config.Compactness:
			err = AddCompactness(t)
		case config.Luminosity:
			err = AddLuminosity(t)
		case config.IronGroup:
			err = AddIronGroup(t, cfg.Network.IronGroup)
		case config.EnclosedMass:
			err = AddEnclosedMass(t)
		case config.CenteredRadius:
			err = AddCenteredRadius(t)
		case config.Velz:
			err = AddVelz(t)
		case config.Sums:
			err = AddSums(t, net)
		default:
			err = fmt.Errorf("%w: unknown derived column %q", config.ErrInvalidConfig, name)
		}
		if err != nil {
			return fmt.Errorf("derive %s: %w", name, err)
		}
	}
	return nil
}

func columns(t *stellar.Table, names ...string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return cols, nil
}

func AddCompactness(t *stellar.Table) error {
	cols, err := columns(t, "radius", "mass")
	if err != nil {
		return err
	}
	xi, err := quantities.Compactness(cols[1], cols[0])
	if err != nil {
		return err
	}
	return t.Set("compactness", xi)
}

func AddLuminosity(t *stellar.Table) error {
	cols, err := columns(t, "radius", "temperature")
	if err != nil {
		return err
	}
	lum, err := quantities.Luminosity(cols[0], cols[1])
	if err != nil {
		return err
	}
	return t.Set("luminosity", lum)
}

func AddIronGroup(t *stellar.Table, isotopes []string) error {
	iron, err := network.SumIsotopes(t, isotopes)
	if err != nil {
		return err
	}
	return t.Set("iron_group", iron)
}

func AddEnclosedMass(t *stellar.Table) error {
	zm, err := t.Column("zone_mass")
	if err != nil {
		return err
	}
	return t.Set("enclosed_mass", quantities.EnclosedMass(zm))
}

func AddCenteredRadius(t *stellar.Table) error {
	r, err := t.Column("radius")
	if err != nil {
		return err
	}
	return t.Set("r_center", quantities.CenteredRadius(r))
}

func AddVelz(t *stellar.Table) error {
	cols, err := columns(t, "radius", "ang_velocity")
	if err != nil {
		return err
	}
	v, err := quantities.TangentialVelocity(cols[0], cols[1])
	if err != nil {
		return err
	}
	return t.Set("velz", v)
}

// AddSums appends sumx, sumy, ye and abar.
func AddSums(t *stellar.Table, net network.Network) error {
	sums, err := network.GetSums(t, net)
	if err != nil {
		return err
	}
	st := sums.Table()
	for _, name := range st.Columns() {
		col, _ := st.Column(name)
		if err := t.Set(name, col); err != nil {
			return err
		}
	}
	return nil
}
