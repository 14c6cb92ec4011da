// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package postprocess

import (
	"math"
	"testing"

	"github.com/wayverb/core/math/lin"
)

func TestNullAttenuatorIsOmnidirectional(t *testing.T) {
	a := NewNullAttenuator()
	dirs := []lin.V3{{X: 1}, {Y: 1}, {Z: -1}, {X: -1, Y: 1, Z: 1}}
	for _, d := range dirs {
		if g := a.Gain(d); g != 1 {
			t.Fatalf("Gain(%v) = %v, want 1", d, g)
		}
	}
	if a.Channel() != 0 {
		t.Fatalf("Channel() = %d, want 0", a.Channel())
	}
}

func TestMicrophoneCardioidGain(t *testing.T) {
	pointing := lin.V3{Z: 1}
	a := NewMicrophoneAttenuator(pointing, 0.5)

	onAxis := a.Gain(lin.V3{Z: 1})
	if !lin.Aeq(float64(onAxis), 1) {
		t.Fatalf("on-axis gain = %v, want 1", onAxis)
	}

	side := a.Gain(lin.V3{X: 1})
	if !lin.Aeq(float64(side), 0.5) {
		t.Fatalf("side gain = %v, want 0.5", side)
	}

	rear := a.Gain(lin.V3{Z: -1})
	if !lin.Aeq(float64(rear), 0) {
		t.Fatalf("rear gain = %v, want 0", rear)
	}
}

func TestMicrophoneOmniShapeIsFlat(t *testing.T) {
	a := NewMicrophoneAttenuator(lin.V3{Z: 1}, 0)
	for _, d := range []lin.V3{{Z: 1}, {Z: -1}, {X: 1}} {
		if g := a.Gain(d); !lin.Aeq(float64(g), 1) {
			t.Fatalf("Gain(%v) = %v, want 1 for omni shape", d, g)
		}
	}
}

func TestHrtfAttenuatorResolvesAzimuthElevation(t *testing.T) {
	var gotAz, gotEl float64
	var gotChannel int
	lookup := func(az, el float64, channel int) float32 {
		gotAz, gotEl, gotChannel = az, el, channel
		return 0.75
	}
	forward := lin.V3{Z: 1}
	up := lin.V3{Y: 1}
	a := NewHrtfAttenuator(forward, up, 1, lookup)

	g := a.Gain(lin.V3{X: 1})
	if g != 0.75 {
		t.Fatalf("Gain = %v, want 0.75", g)
	}
	// With forward +Z and up +Y, right is forward x up = -X, so +X lies at
	// azimuth -pi/2.
	if !lin.Aeq(gotAz, -math.Pi/2) {
		t.Fatalf("azimuth = %v, want -pi/2", gotAz)
	}
	if !lin.Aeq(gotEl, 0) {
		t.Fatalf("elevation = %v, want 0", gotEl)
	}
	if gotChannel != 1 {
		t.Fatalf("channel = %d, want 1", gotChannel)
	}
	if a.Channel() != 1 {
		t.Fatalf("Channel() = %d, want 1", a.Channel())
	}
}

func TestHrtfAttenuatorNilLookupReturnsUnitGain(t *testing.T) {
	a := NewHrtfAttenuator(lin.V3{Z: 1}, lin.V3{Y: 1}, 0, nil)
	if g := a.Gain(lin.V3{X: 1}); g != 1 {
		t.Fatalf("Gain = %v, want 1 for nil lookup", g)
	}
}

func TestClampUnit(t *testing.T) {
	cases := map[float64]float64{2: 1, -2: -1, 0.5: 0.5}
	for in, want := range cases {
		if got := clampUnit(in); got != want {
			t.Fatalf("clampUnit(%v) = %v, want %v", in, got, want)
		}
	}
}
