// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytracer

import (
	"math"
	"testing"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/math/lin"
)

func TestResultsMaxTime(t *testing.T) {
	env := environment.Default()
	direct := Impulse{Volume: bands.Fill(1), Distance: 10}
	r := &Results{
		Direct: &direct,
		ImageSource: []Impulse{
			{Volume: bands.Fill(1), Distance: 20},
		},
		Diffuse: [][]Impulse{
			{{Volume: bands.Fill(1), Distance: 50}},
		},
	}
	want := 50.0 / env.SpeedOfSound
	if got := r.MaxTime(env); !lin.Aeq(got, want) {
		t.Errorf("MaxTime = %v, want %v", got, want)
	}
}

func TestResultsFiniteDetectsNaN(t *testing.T) {
	bad := bands.Fill(1)
	bad[2] = float32(math.NaN())
	r := &Results{Direct: &Impulse{Volume: bad}}
	if r.Finite() {
		t.Error("expected Results with a NaN impulse volume to report not Finite")
	}
}

func TestResultsFiniteOK(t *testing.T) {
	r := &Results{
		Direct:      &Impulse{Volume: bands.Fill(1)},
		ImageSource: []Impulse{{Volume: bands.Fill(0.5)}},
		Diffuse:     [][]Impulse{{{Volume: bands.Fill(0.1)}}},
	}
	if !r.Finite() {
		t.Error("expected all-finite Results to report Finite")
	}
}
