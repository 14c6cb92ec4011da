// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geometry

import "github.com/wayverb/core/bands"

// Material is a surface acoustic material: a pair of per-band coefficient
// vectors. Invariants (enforced by Validate, not by the zero value):
// 0 <= Absorption[i] < 1, 0 <= Scattering[i] <= 1.
type Material struct {
	Absorption bands.Vector
	Scattering bands.Vector
}

// Reflectance returns 1-Absorption per band.
func (m Material) Reflectance() bands.Vector {
	var r bands.Vector
	for i := range r {
		r[i] = 1 - m.Absorption[i]
	}
	return r
}

// Validate reports whether the material's coefficients satisfy spec.md's
// data model invariants.
func (m Material) Validate() bool {
	for i := 0; i < bands.N; i++ {
		a := m.Absorption[i]
		if a < 0 || a >= 1 {
			return false
		}
		s := m.Scattering[i]
		if s < 0 || s > 1 {
			return false
		}
	}
	return true
}
