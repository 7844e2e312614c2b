package stellar

import "math"

// Degenerate returns the indices of zones holding NaN or Inf.
func Degenerate(values []float64) []int {
	var idx []int
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			idx = append(idx, i)
		}
	}
	return idx
}

// IsFinite reports whether every value is finite.
func IsFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
