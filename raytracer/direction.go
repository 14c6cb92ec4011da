// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytracer

import (
	"math"
	"math/rand"

	"github.com/wayverb/core/math/lin"
)

// DirectionSource supplies the initial launch direction for each traced ray.
// It is an interface (rather than a bare *rand.Rand) so that tests can supply
// a fixed, enumerable set of directions instead of a stochastic one.
type DirectionSource interface {
	Next() lin.V3
}

// uniformSphere draws directions uniformly over the unit sphere using the
// standard z/theta parameterisation, seeded for determinism (spec.md's
// "same seed, same scene -> identical Results" testable property).
type uniformSphere struct {
	rng *rand.Rand
}

// NewUniformSphere returns a DirectionSource that draws directions uniformly
// over the unit sphere from a seeded generator.
func NewUniformSphere(seed int64) DirectionSource {
	return &uniformSphere{rng: rand.New(rand.NewSource(seed))}
}

func (u *uniformSphere) Next() lin.V3 {
	z := 2*u.rng.Float64() - 1
	theta := 2 * math.Pi * u.rng.Float64()
	r := math.Sqrt(1 - z*z)
	return lin.V3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}
}
