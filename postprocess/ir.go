// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// ir.go synthesizes a per-band pressure impulse response from a ray
// tracer Results (spec.md §4.5): each captured impulse's per-band energy is
// converted to an equivalent pressure magnitude and deposited into the two
// output samples nearest its fractional arrival time, weighted by the
// attenuator's directional gain.
package postprocess

import (
	"math"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/raytracer"
)

// IntensityToPressure converts a per-band acoustic intensity (energy)
// vector into an equivalent pressure magnitude vector, p = sqrt(I*Z), using
// the environment's characteristic acoustic impedance.
func IntensityToPressure(intensity bands.Vector, impedance float64) bands.Vector {
	var out bands.Vector
	for i, v := range intensity {
		if v < 0 {
			v = 0
		}
		out[i] = float32(math.Sqrt(float64(v) * impedance))
	}
	return out
}

// RaytracedIR renders results into a bands.N-row buffer, samples long at fs
// Hz, applying att's directional gain to every impulse.
func RaytracedIR(results *raytracer.Results, env environment.Environment, att Attenuator, fs float64, samples int) [][]float32 {
	out := make([][]float32, bands.N)
	for b := range out {
		out[b] = make([]float32, samples)
	}
	if results == nil {
		return out
	}

	deposit := func(im raytracer.Impulse) {
		gain := att.Gain(im.Direction)
		pressure := IntensityToPressure(im.Volume, env.AcousticImpedance)
		t := im.Time(env) * fs
		lo := int(math.Floor(t))
		if lo < 0 || lo >= samples {
			return
		}
		frac := float32(t - float64(lo))
		for b := 0; b < bands.N; b++ {
			v := pressure[b] * gain
			out[b][lo] += v * (1 - frac)
			if lo+1 < samples {
				out[b][lo+1] += v * frac
			}
		}
	}

	if results.Direct != nil {
		deposit(*results.Direct)
	}
	for _, im := range results.ImageSource {
		deposit(im)
	}
	for _, layer := range results.Diffuse {
		for _, im := range layer {
			deposit(im)
		}
	}
	return out
}
