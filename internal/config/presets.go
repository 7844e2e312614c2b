package config

import "sort"

// Column layouts of the known progenitor series. Isotope columns follow the
// hydrodynamic columns in network order.
var Presets = map[string]*Config{
	"sukhbold_2016": {
		Load: LoadConfig{
			Skiprows:        2,
			DelimWhitespace: true,
			MissingChar:     DefaultMissingChar,
			MatchStr:        DefaultMatchStr,
			Strip:           DefaultStrip,
			DerivedColumns:  []string{Compactness, Luminosity, IronGroup},
		},
		Columns: layout(
			[]string{"", "zone_mass", "mass", "radius", "velocity", "density", "temperature",
				"pressure", "energy", "entropy", "ang_velocity", "", "", "", ""},
			"neut", "h1", "prot", "he3", "he4", "c12", "n14", "o16", "ne20", "mg24",
			"si28", "s32", "ar36", "ca40", "ti44", "cr48", "fe52", "fe54", "ni56", "fe56", "cr56",
		),
		Network: NetworkConfig{
			Name:      "approx21",
			IronGroup: []string{"fe52", "fe54", "ni56", "fe56", "cr56"},
		},
	},
	"wh_02": {
		Load: LoadConfig{
			Skiprows:        2,
			DelimWhitespace: true,
			MissingChar:     DefaultMissingChar,
			MatchStr:        DefaultMatchStr,
			Strip:           DefaultStrip,
			DerivedColumns:  []string{Compactness, Luminosity},
		},
		Columns: layout(
			[]string{"", "mass", "radius", "velocity", "density", "temperature",
				"pressure", "energy", "entropy", "ang_velocity"},
			"neut", "h1", "prot", "he3", "he4", "c12", "n14", "o16", "ne20", "mg24",
			"si28", "s32", "ar36", "ca40", "ti44", "cr48", "fe52", "fe54", "ni56",
		),
		Network: NetworkConfig{
			Name:      "approx19",
			IronGroup: []string{"fe52", "fe54", "ni56"},
		},
	},
}

// layout maps names to raw indices; empty names are unused raw columns.
func layout(hydro []string, isotopes ...string) map[string]int {
	cols := make(map[string]int, len(hydro)+len(isotopes))
	for i, name := range hydro {
		if name != "" {
			cols[name] = i
		}
	}
	for i, name := range isotopes {
		cols[name] = len(hydro) + i
	}
	return cols
}

// Preset returns a copy of the built-in configuration for a series.
func Preset(series string) *Config {
	cfg, ok := Presets[series]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
