// Package stellar provides the core profile types shared by the derived
// quantity engine, the composition aggregator and profile assembly.
//
// A profile is a [Table]: an ordered set of named, equal-length columns,
// one value per radial zone. Zone order is whatever the source file uses
// and is never changed by any operation in this module.
//
//   - [Table]: named per-zone columns
//   - [ColumnError]: a required column is absent
//   - [Degenerate]: locate zones with Inf or NaN values
//
// # Errors
//
// Missing columns and length mismatches are reported immediately.
// Division by zero inside a formula is not an error: the resulting Inf
// or NaN is kept so callers can filter it.
//
//	xi, err := quantities.Compactness(mass, radius)
//	if bad := stellar.Degenerate(xi); len(bad) > 0 {
//	    // radius was zero somewhere
//	}
package stellar
