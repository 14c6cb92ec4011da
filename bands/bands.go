// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bands provides the fixed-length per-frequency-band vector used
// throughout the acoustic simulator: material coefficients, ray impulse
// volumes, air attenuation, and directional attenuator gains are all N-band
// vectors carried as a compile-time-sized array rather than a slice, so that
// bands never alias and never need bounds checking at the hot path in the
// ray tracer and waveguide boundary filters.
package bands

import "math"

// N is the number of frequency bands carried through the simulator. It is a
// package-wide constant rather than a configurable value: every Vector,
// Material, and Attenuator gain is sized to exactly N.
const N = 8

// Vector is a per-band quantity: an energy, a coefficient, or a gain.
type Vector [N]float32

// Fill returns a Vector with every band set to v.
func Fill(v float32) Vector {
	var r Vector
	for i := range r {
		r[i] = v
	}
	return r
}

// Add returns v+o, band by band.
func (v Vector) Add(o Vector) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Mul returns v*o, band by band.
func (v Vector) Mul(o Vector) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// Sub returns v-o, band by band.
func (v Vector) Sub(o Vector) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Scale returns every band of v multiplied by s.
func (v Vector) Scale(s float32) Vector {
	var r Vector
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// Sum returns the total energy across all bands.
func (v Vector) Sum() float32 {
	var s float32
	for _, b := range v {
		s += b
	}
	return s
}

// Max returns the largest band value.
func (v Vector) Max() float32 {
	m := v[0]
	for _, b := range v[1:] {
		if b > m {
			m = b
		}
	}
	return m
}

// Finite reports whether every band is a finite, non-NaN number. Callers use
// this to detect the NumericalInstability condition described in the
// simulator's error taxonomy.
func (v Vector) Finite() bool {
	for _, b := range v {
		if math.IsNaN(float64(b)) || math.IsInf(float64(b), 0) {
			return false
		}
	}
	return true
}
