// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package postprocess

import (
	"math"
	"testing"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/math/lin"
	"github.com/wayverb/core/raytracer"
)

func TestIntensityToPressureIsNonNegativeSqrtLaw(t *testing.T) {
	in := bands.Fill(4)
	out := IntensityToPressure(in, 100)
	want := float32(math.Sqrt(4 * 100))
	for _, v := range out {
		if !lin.Aeq(float64(v), float64(want)) {
			t.Fatalf("got %v, want %v", v, want)
		}
	}
}

func TestIntensityToPressureClampsNegativeEnergy(t *testing.T) {
	in := bands.Vector{}
	in[0] = -1
	out := IntensityToPressure(in, 100)
	if out[0] != 0 {
		t.Fatalf("got %v, want 0 for negative intensity", out[0])
	}
}

func TestRaytracedIRNilResultsReturnsSilence(t *testing.T) {
	env := environment.Default()
	out := RaytracedIR(nil, env, NewNullAttenuator(), 1000, 10)
	if len(out) != bands.N {
		t.Fatalf("got %d bands, want %d", len(out), bands.N)
	}
	for _, row := range out {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("expected silence, got %v", v)
			}
		}
	}
}

func TestRaytracedIRDepositsDirectImpulseNearArrivalSample(t *testing.T) {
	env := environment.Default()
	im := raytracer.Impulse{Volume: bands.Fill(1), Direction: lin.V3{Z: 1}, Distance: env.SpeedOfSound * 0.01}
	results := &raytracer.Results{Direct: &im}

	fs := 1000.0
	out := RaytracedIR(results, env, NewNullAttenuator(), fs, 100)

	expectedSample := im.Time(env) * fs // == 10
	lo := int(math.Floor(expectedSample))
	var total float32
	for b := 0; b < bands.N; b++ {
		total += out[b][lo]
		if lo+1 < len(out[b]) {
			total += out[b][lo+1]
		}
	}
	if total <= 0 {
		t.Fatalf("expected non-zero energy near sample %d, got total %v", lo, total)
	}
}

func TestRaytracedIRAppliesAttenuatorGain(t *testing.T) {
	env := environment.Default()
	im := raytracer.Impulse{Volume: bands.Fill(1), Direction: lin.V3{Z: 1}, Distance: 3.4}
	results := &raytracer.Results{Direct: &im}

	full := RaytracedIR(results, env, NewNullAttenuator(), 1000, 100)
	muted := RaytracedIR(results, env, NewMicrophoneAttenuator(lin.V3{Z: -1}, 1), 1000, 100)

	var sumFull, sumMuted float32
	for b := 0; b < bands.N; b++ {
		for i := range full[b] {
			sumFull += full[b][i]
			sumMuted += muted[b][i]
		}
	}
	if sumMuted >= sumFull {
		t.Fatalf("expected attenuated sum (%v) < full sum (%v)", sumMuted, sumFull)
	}
}

func TestRaytracedIRDropsOutOfRangeArrivals(t *testing.T) {
	env := environment.Default()
	im := raytracer.Impulse{Volume: bands.Fill(1), Direction: lin.V3{Z: 1}, Distance: env.SpeedOfSound * 1000}
	results := &raytracer.Results{Direct: &im}

	out := RaytracedIR(results, env, NewNullAttenuator(), 1000, 10)
	for _, row := range out {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("expected arrival beyond buffer to be dropped, got %v", v)
			}
		}
	}
}
