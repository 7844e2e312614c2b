package quantities

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/progs/internal/stellar"
	"github.com/san-kum/progs/internal/units"
)

// ErrOutOfRange indicates an interpolation target outside the profile.
var ErrOutOfRange = errors.New("quantities: target outside profile range")

// EnclosedMass integrates zone mass in index order.
func EnclosedMass(zoneMass []float64) []float64 {
	enc := make([]float64, len(zoneMass))
	sum := 0.0
	for i, m := range zoneMass {
		sum += m
		enc[i] = sum
	}
	return enc
}

// CenteredRadius returns the cell-centred radius from outer-edge radius.
// The first cell is taken to start at r = 0.
func CenteredRadius(outer []float64) []float64 {
	rc := make([]float64, len(outer))
	for i, r := range outer {
		dr := r
		if i > 0 {
			dr = r - outer[i-1]
		}
		rc[i] = r - 0.5*dr
	}
	return rc
}

// Compactness returns xi = M / (r / 1000 km) with mass in Msun and radius
// in cm. Zero radius gives Inf or NaN.
func Compactness(mass, radius []float64) ([]float64, error) {
	if err := stellar.CheckLengths(len(mass), radius); err != nil {
		return nil, fmt.Errorf("compactness: %w", err)
	}
	xi := make([]float64, len(mass))
	for i := range mass {
		xi[i] = mass[i] / (radius[i] * units.CmTo1000Km)
	}
	return xi, nil
}

// Luminosity returns the blackbody luminosity 4 pi sigma r^2 T^4 in erg/s.
func Luminosity(radius, temperature []float64) ([]float64, error) {
	if err := stellar.CheckLengths(len(radius), temperature); err != nil {
		return nil, fmt.Errorf("luminosity: %w", err)
	}
	lum := make([]float64, len(radius))
	for i := range radius {
		r, t := radius[i], temperature[i]
		lum[i] = 4 * math.Pi * units.SigmaSB * r * r * t * t * t * t
	}
	return lum, nil
}

// TangentialVelocity returns radius times angular velocity, in cm/s.
func TangentialVelocity(radius, angularVelocity []float64) ([]float64, error) {
	if err := stellar.CheckLengths(len(radius), angularVelocity); err != nil {
		return nil, fmt.Errorf("tangential velocity: %w", err)
	}
	v := make([]float64, len(radius))
	for i := range radius {
		v[i] = radius[i] * angularVelocity[i]
	}
	return v, nil
}

// CompactnessAt evaluates compactness at enclosed mass m0, interpolating
// radius linearly in mass. mass must be monotonic in either direction.
func CompactnessAt(m0 float64, mass, radius []float64) (float64, error) {
	if err := stellar.CheckLengths(len(mass), radius); err != nil {
		return 0, fmt.Errorf("compactness at %g: %w", m0, err)
	}
	if len(mass) == 0 {
		return 0, stellar.ErrEmptyTable
	}
	if mass[len(mass)-1] < mass[0] {
		mass, radius = reversed(mass), reversed(radius)
	}
	if m0 < mass[0] || m0 > mass[len(mass)-1] {
		return 0, fmt.Errorf("%w: mass %g not in [%g, %g]", ErrOutOfRange, m0, mass[0], mass[len(mass)-1])
	}

	r := radius[0]
	for i := 1; i < len(mass); i++ {
		if mass[i] < m0 {
			continue
		}
		dm := mass[i] - mass[i-1]
		if dm == 0 {
			r = radius[i]
		} else {
			r = radius[i-1] + (m0-mass[i-1])*(radius[i]-radius[i-1])/dm
		}
		break
	}
	if mass[0] == m0 {
		r = radius[0]
	}

	return m0 / (r * units.CmTo1000Km), nil
}

func reversed(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}
