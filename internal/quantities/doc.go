// Package quantities computes derived per-zone quantities from profile
// columns.
//
// Every function is pure: inputs are never modified and each call returns
// a freshly allocated slice aligned index-for-index with its inputs.
//
//   - [EnclosedMass]: running sum of zone mass
//   - [CenteredRadius]: cell-centre radius from outer-edge radius
//   - [Compactness]: mass over radius in 1000 km
//   - [Luminosity]: blackbody luminosity
//   - [TangentialVelocity]: radius times angular velocity
//
// Functions taking more than one column return [stellar.ErrLengthMismatch]
// before doing any work if the lengths differ.
package quantities
