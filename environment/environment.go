// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package environment carries the physical constants shared by the ray
// tracer and the waveguide mesh: speed of sound, acoustic impedance, and
// per-band air attenuation. It is a standalone package (rather than living
// inside raytracer or waveguide) so that neither simulator depends on the
// other's package just to share these constants.
package environment

import (
	"math"

	"github.com/wayverb/core/bands"
)

// Environment holds the propagation constants for a single simulation run.
// SI units throughout: metres, seconds, pascals.
type Environment struct {
	SpeedOfSound      float64     // m/s
	AcousticImpedance float64     // Pa.s/m
	AirAttenuation    bands.Vector // per-metre exponential decay, per band
}

// Default returns the environment spec.md names as defaults: 340 m/s,
// 400 Pa.s/m, and no air absorption.
func Default() Environment {
	return Environment{
		SpeedOfSound:      340,
		AcousticImpedance: 400,
		AirAttenuation:    bands.Vector{},
	}
}

// AttenuateOverDistance returns v scaled by this environment's per-band air
// attenuation over the given distance, exp(-attenuation[i] * distance).
func (e Environment) AttenuateOverDistance(v bands.Vector, distance float64) bands.Vector {
	var out bands.Vector
	for i := range v {
		a := float64(e.AirAttenuation[i])
		if a == 0 {
			out[i] = v[i]
			continue
		}
		out[i] = v[i] * float32(math.Exp(-a*distance))
	}
	return out
}
