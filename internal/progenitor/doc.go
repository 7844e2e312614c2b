// Package progenitor assembles a progenitor profile from a raw model file.
//
// Assembly copies the configured raw columns under their configured names,
// converts mass columns from grams to solar masses, and appends the derived
// columns requested by the series configuration:
//
//   - compactness: mass / (radius / 1000 km)
//   - luminosity: blackbody luminosity from radius and temperature
//   - iron_group: summed mass fraction of the iron group isotopes
//   - enclosed_mass: running sum of zone_mass
//   - centered_radius: cell-centre radius, stored as r_center
//   - velz: tangential velocity from ang_velocity
//   - sums: sumx, sumy, ye and abar from the network composition
//
// # Loading
//
//	l := progenitor.NewLoader("/data/progs")
//	p, err := l.Load("12.1", "s16")
//	xi, _ := p.Table.Column("compactness")
package progenitor
