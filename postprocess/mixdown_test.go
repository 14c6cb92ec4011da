// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package postprocess

import (
	"testing"

	"github.com/wayverb/core/bands"
)

func TestCombineStreamsAddsWaveguideToLowBandsOnly(t *testing.T) {
	rayIR := make([][]float32, bands.N)
	for b := range rayIR {
		rayIR[b] = make([]float32, 4)
	}
	waveguide := []float32{1, 1, 1, 1}

	out := CombineStreams(rayIR, waveguide, 3)

	for b := 0; b < 3; b++ {
		for i, v := range out[b] {
			if v != 1 {
				t.Fatalf("band %d sample %d = %v, want 1 (waveguide contribution)", b, i, v)
			}
		}
	}
	for b := 3; b < bands.N; b++ {
		for i, v := range out[b] {
			if v != 0 {
				t.Fatalf("band %d sample %d = %v, want 0 (no waveguide contribution)", b, i, v)
			}
		}
	}
}

func TestCombineStreamsDoesNotMutateInput(t *testing.T) {
	rayIR := [][]float32{{0, 0}}
	waveguide := []float32{5, 5}
	_ = CombineStreams(rayIR, waveguide, 1)
	if rayIR[0][0] != 0 {
		t.Fatalf("input rayIR was mutated")
	}
}

func TestMixdownEmptyInputReturnsNil(t *testing.T) {
	mix, debug := Mixdown(nil, 44100)
	if mix != nil || debug != nil {
		t.Fatalf("expected nil, nil for empty input")
	}
}

func TestMixdownDebugMatchesUnnormalizedSum(t *testing.T) {
	multiband := make([][]float32, bands.N)
	for b := range multiband {
		multiband[b] = make([]float32, 64)
		multiband[b][0] = 1
	}
	mix, debug := Mixdown(multiband, 44100)
	if len(mix) != 64 || len(debug) != 64 {
		t.Fatalf("unexpected output length: mix=%d debug=%d", len(mix), len(debug))
	}

	norm := float32(1) / float32(bands.N)
	for i := range mix {
		want := debug[i] * norm
		if mix[i] != want {
			t.Fatalf("mix[%d] = %v, want debug[%d]*norm = %v", i, mix[i], i, want)
		}
	}
}

func TestMixdownProducesNonZeroOutputForImpulse(t *testing.T) {
	multiband := make([][]float32, bands.N)
	for b := range multiband {
		multiband[b] = make([]float32, 256)
		multiband[b][10] = 1
	}
	mix, _ := Mixdown(multiband, 44100)

	var sum float32
	for _, v := range mix {
		if v < 0 {
			v = -v
		}
		sum += v
	}
	if sum == 0 {
		t.Fatalf("expected non-zero mixdown energy")
	}
}
