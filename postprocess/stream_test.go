// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package postprocess

import (
	"math"
	"testing"
)

func TestDCBlockRemovesConstantOffset(t *testing.T) {
	signal := make([]float32, 2000)
	for i := range signal {
		signal[i] = 1
	}
	out := DCBlock(signal, 0.995)

	var tailSum float32
	const tail = 200
	for _, v := range out[len(out)-tail:] {
		tailSum += v
	}
	mean := tailSum / float32(tail)
	if math.Abs(float64(mean)) > 0.05 {
		t.Fatalf("tail mean = %v, want near 0 after DC blocking", mean)
	}
}

func TestDCBlockPreservesLength(t *testing.T) {
	signal := make([]float32, 37)
	out := DCBlock(signal, 0.995)
	if len(out) != len(signal) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(signal))
	}
}

func TestResampleIdentityWhenRatesMatch(t *testing.T) {
	signal := []float32{1, 2, 3, 4, 5}
	out := Resample(signal, 44100, 44100)
	if len(out) != len(signal) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(signal))
	}
	for i := range signal {
		if out[i] != signal[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], signal[i])
		}
	}
}

func TestResampleDownsampleHalvesLength(t *testing.T) {
	signal := make([]float32, 1000)
	for i := range signal {
		signal[i] = float32(math.Sin(2 * math.Pi * 10 * float64(i) / 1000))
	}
	out := Resample(signal, 1000, 500)
	wantLen := 500
	if diff := len(out) - wantLen; diff < -1 || diff > 1 {
		t.Fatalf("len(out) = %d, want approximately %d", len(out), wantLen)
	}
}

func TestResamplePreservesLowFrequencyTone(t *testing.T) {
	const fromFs, toFs, freq = 2000.0, 1000.0, 20.0
	n := 2000
	signal := make([]float32, n)
	for i := range signal {
		signal[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / fromFs))
	}
	out := Resample(signal, fromFs, toFs)

	var peak float32
	for _, v := range out[sincHalfWidth*2 : len(out)-sincHalfWidth*2] {
		if v > peak {
			peak = v
		}
	}
	if peak < 0.8 {
		t.Fatalf("resampled peak = %v, want close to 1 for a low frequency tone", peak)
	}
}
