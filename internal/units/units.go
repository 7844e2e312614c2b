// Package units holds the fixed conversion factors and physical constants
// used by the derived-quantity formulas. All values are CGS.
package units

const (
	// KmToCm is the number of centimetres in a kilometre.
	KmToCm = 1e5

	// CmTo1000Km converts a length in cm to units of 1000 km.
	CmTo1000Km = 1 / (1e3 * KmToCm)

	// MsunG is the IAU 2015 nominal solar mass in grams.
	MsunG = 1.988409870698051e33

	// GToMsun converts a mass in grams to solar masses.
	GToMsun = 1 / MsunG

	// SigmaSB is the Stefan-Boltzmann constant in erg cm^-2 s^-1 K^-4.
	SigmaSB = 5.6703744191844314e-5
)
