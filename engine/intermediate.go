// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// intermediate.go holds everything a Run produced before the final
// attenuator-dependent mixdown: the raw ray tracer Results and the
// waveguide's raw receiver pressure stream at the mesh sample rate (DC
// blocking and resampling happen in Postprocess). Splitting this out lets a caller
// call Postprocess once per output channel (e.g. once per HRTF ear) without
// re-running the expensive tracing and meshing stages.
package engine

import (
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/postprocess"
	"github.com/wayverb/core/raytracer"
)

// Intermediate is the output of a completed Run.
type Intermediate struct {
	Results         *raytracer.Results
	Env             environment.Environment
	WaveguideStream []float32
	WaveguideRate   float64
	CrossoverBand   int
}

// Postprocess renders this Intermediate through the crossover/mixdown
// pipeline (postprocess.RaytracedIR + CombineStreams + Mixdown) for the
// given attenuator, at fsOut samples/sec. It returns two rows: the
// normalized mix and, per Open Question #1, the pre-normalization
// DebugUnscaledMix.
func (r *Intermediate) Postprocess(att postprocess.Attenuator, fsOut float64) [][]float32 {
	tail := 0.05 // seconds of extra tail beyond the latest impulse/waveguide sample
	duration := r.Results.MaxTime(r.Env) + tail
	samples := int(duration*fsOut) + 1

	rayIR := postprocess.RaytracedIR(r.Results, r.Env, att, fsOut, samples)

	conditioned := postprocess.DCBlock(r.WaveguideStream, 0.995)
	waveStream := postprocess.Resample(conditioned, r.WaveguideRate, fsOut)

	combined := postprocess.CombineStreams(rayIR, waveStream, r.CrossoverBand)
	mix, debug := postprocess.Mixdown(combined, fsOut)
	return [][]float32{mix, debug}
}
