// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// results.go is grounded on wayverb's raytracer/include/raytracer/results.h:
// the ray tracer's output is a small, plain data aggregate (direct sound,
// validated early reflections, and diffuse impulses bucketed by reflection
// depth) rather than a stream the caller has to consume incrementally.

package raytracer

import (
	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/math/lin"
)

// Impulse is one discrete arrival at the receiver: a per-band volume, the
// unit direction it arrives from (receiver-relative, for directional
// attenuators), and the distance travelled. Time = Distance / speed_of_sound.
type Impulse struct {
	Volume    bands.Vector
	Direction lin.V3
	Distance  float64
}

// Time returns the impulse's arrival time under the given environment.
func (im Impulse) Time(env environment.Environment) float64 {
	return im.Distance / env.SpeedOfSound
}

// Results is the immutable output of a ray tracer run.
type Results struct {
	Direct      *Impulse
	ImageSource []Impulse
	Diffuse     [][]Impulse // Diffuse[depth] holds every diffuse-rain impulse captured at that reflection depth.
}

// MaxTime returns the latest arrival time across every impulse in Results,
// used by the engine to size the required waveguide step count
// (spec.md §4.4).
func (r *Results) MaxTime(env environment.Environment) float64 {
	max := 0.0
	consider := func(im Impulse) {
		if t := im.Time(env); t > max {
			max = t
		}
	}
	if r.Direct != nil {
		consider(*r.Direct)
	}
	for _, im := range r.ImageSource {
		consider(im)
	}
	for _, layer := range r.Diffuse {
		for _, im := range layer {
			consider(im)
		}
	}
	return max
}

// Finite reports whether every impulse volume in Results is free of NaN/Inf,
// the NumericalInstability condition from spec.md §7.
func (r *Results) Finite() bool {
	if r.Direct != nil && !r.Direct.Volume.Finite() {
		return false
	}
	for _, im := range r.ImageSource {
		if !im.Volume.Finite() {
			return false
		}
	}
	for _, layer := range r.Diffuse {
		for _, im := range layer {
			if !im.Volume.Finite() {
				return false
			}
		}
	}
	return true
}
