// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package audio

import (
	"testing"

	"github.com/wayverb/core/math/lin"
)

func TestRelativeDirection(t *testing.T) {
	l := NewListener(lin.V3{X: 1, Y: 0, Z: 0}, lin.V3{Z: 1}, lin.V3{Y: 1})
	got := l.RelativeDirection(lin.V3{X: 1, Y: 0, Z: 5})
	want := lin.V3{Z: 1}
	if !got.Aeq(&want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestClampGain(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0.5: 0.5, 2: 1}
	for in, want := range cases {
		if got := ClampGain(in); got != want {
			t.Fatalf("ClampGain(%v) = %v, want %v", in, got, want)
		}
	}
}
