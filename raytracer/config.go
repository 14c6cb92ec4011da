// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytracer

// Config carries the ray tracer's tunable parameters (spec.md §4.2).
type Config struct {
	// Rays is the number of stochastic rays cast from the source.
	Rays int
	// MaxDepth bounds the number of reflection bounces traced per ray.
	MaxDepth int
	// MaxImageSourceOrder bounds the validated specular reflection chain
	// search (the "early reflection" branch); independent of MaxDepth,
	// which bounds the stochastic diffuse-rain search.
	MaxImageSourceOrder int
	// EnergyThreshold is the per-band energy floor below which a ray becomes
	// a Russian roulette candidate: it survives with probability
	// energy/EnergyThreshold, rescaled to stay an unbiased estimator.
	EnergyThreshold float32
	// Seed drives every per-ray Russian-roulette/scattering generator. Two
	// Trace calls with the same Seed, Config, scene and DirectionSource
	// produce identical Results.
	Seed int64
}

// DefaultConfig returns the parameter set spec.md's worked examples use.
func DefaultConfig() Config {
	return Config{
		Rays:                100000,
		MaxDepth:             50,
		MaxImageSourceOrder:  10,
		EnergyThreshold:      1e-4,
		Seed:                 1,
	}
}
