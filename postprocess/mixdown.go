// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// mixdown.go implements the final crossover/mixdown stage of spec.md §4.5:
// CombineStreams folds the waveguide mesh's conditioned pressure stream into
// the low-frequency bands of the ray-traced multiband IR (the mesh's
// Courant-limited spacing only resolves frequencies below the mesh's
// cutoff), and Mixdown re-blends the per-band result through a bank of
// crossover bandpass filters into a single time-domain signal. Open
// Question #1 (spec.md Design Notes) is resolved here by summing every
// band's filtered contribution rather than cross-fading a subset; the
// pre-normalization sum is exposed as DebugUnscaledMix for diagnostics.
package postprocess

import "math"

// bandCenters gives each of bands.N bands a nominal octave-spaced center
// frequency for the crossover filter bank.
var bandCenters = [8]float64{62.5, 125, 250, 500, 1000, 2000, 4000, 8000}

// CombineStreams folds waveguideStream (already DC-blocked and resampled to
// match the ray-traced IR's sample rate) into every band below cutoffBand,
// since the mesh only resolves frequencies under its Courant-limited cutoff.
// Bands at or above cutoffBand are returned unchanged from rayIR.
func CombineStreams(rayIR [][]float32, waveguideStream []float32, cutoffBand int) [][]float32 {
	out := make([][]float32, len(rayIR))
	for b := range rayIR {
		signal := make([]float32, len(rayIR[b]))
		copy(signal, rayIR[b])
		if b < cutoffBand {
			for i := 0; i < len(waveguideStream) && i < len(signal); i++ {
				signal[i] += waveguideStream[i]
			}
		}
		out[b] = signal
	}
	return out
}

// biquad is a minimal constant-Q resonant bandpass used as this mixdown's
// crossover filter; exact crossover alignment between bands is not
// attempted, since the bands were never meant to sum to a flat response on
// their own (they are already independently attenuated raytracer energies).
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newBandpass(centerHz, fs, q float64) *biquad {
	w0 := 2 * math.Pi * centerHz / fs
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return &biquad{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * math.Cos(w0) / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Mixdown filters each band of multiband through its crossover bandpass and
// sums the results, returning both the normalized mix and the unscaled
// pre-normalization sum (DebugUnscaledMix).
func Mixdown(multiband [][]float32, fs float64) (mix, debugUnscaledMix []float32) {
	if len(multiband) == 0 || len(multiband[0]) == 0 {
		return nil, nil
	}
	n := len(multiband[0])
	mix = make([]float32, n)
	for b, signal := range multiband {
		if b >= len(bandCenters) {
			break
		}
		filter := newBandpass(bandCenters[b], fs, 1.4)
		for i, x := range signal {
			mix[i] += float32(filter.process(float64(x)))
		}
	}
	debugUnscaledMix = make([]float32, n)
	copy(debugUnscaledMix, mix)

	norm := float32(1) / float32(len(multiband))
	for i := range mix {
		mix[i] *= norm
	}
	return mix, debugUnscaledMix
}
