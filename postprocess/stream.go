// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// stream.go conditions the waveguide mesh's raw pressure output (spec.md
// §4.4) before it can be combined with the ray-traced impulse response: a DC
// blocker removes the slow drift FDTD boundary filters can introduce, and a
// windowed-sinc resampler retimes the mesh's fs (set by its Courant-limited
// spacing) to the simulation's output sample rate.
package postprocess

import "math"

// DCBlock removes DC offset from signal with the one-pole filter
// y[n] = x[n] - x[n-1] + r*y[n-1]. r close to (but below) 1 rolls off the
// cutoff frequency; 0.995 is a conservative default for audio-rate signals.
func DCBlock(signal []float32, r float32) []float32 {
	out := make([]float32, len(signal))
	var prevIn, prevOut float32
	for i, x := range signal {
		y := x - prevIn + r*prevOut
		out[i] = y
		prevIn = x
		prevOut = y
	}
	return out
}

const sincHalfWidth = 8

// Resample retimes signal from fromFs to toFs using windowed-sinc (Lanczos)
// interpolation with a fixed half-width kernel.
func Resample(signal []float32, fromFs, toFs float64) []float32 {
	if fromFs == toFs || len(signal) == 0 {
		out := make([]float32, len(signal))
		copy(out, signal)
		return out
	}
	ratio := fromFs / toFs
	outLen := int(float64(len(signal)) / ratio)
	out := make([]float32, outLen)
	for i := range out {
		srcPos := float64(i) * ratio
		center := int(math.Floor(srcPos))
		var sum float64
		for k := center - sincHalfWidth; k <= center+sincHalfWidth; k++ {
			if k < 0 || k >= len(signal) {
				continue
			}
			sum += float64(signal[k]) * lanczosSinc(srcPos-float64(k), sincHalfWidth)
		}
		out[i] = float32(sum)
	}
	return out
}

func lanczosSinc(x float64, a int) float64 {
	if x == 0 {
		return 1
	}
	fa := float64(a)
	if math.Abs(x) >= fa {
		return 0
	}
	px := math.Pi * x
	return fa * math.Sin(px) * math.Sin(px/fa) / (px * px)
}
