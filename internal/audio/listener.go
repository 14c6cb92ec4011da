// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// Package audio adapts the teacher audio package's listener/gain
// conventions (Audio.PlaceListener/PlaySound, Audio.SetGain's [0,1] clamp in
// audio/audio.go) for the offline simulator: there is no live audio device
// here (file playback is a spec.md §1 Non-goal), only the listener-placement
// helper the ray tracer uses for arrival directions and the gain-clamping
// helper the bench harness uses.
package audio

import "github.com/wayverb/core/math/lin"

// Listener is a receiver's position and, optionally, orientation frame.
// RelativeDirection uses only Position; postprocess.Attenuator keeps its own
// pointing/up vectors and does not read a Listener.
type Listener struct {
	Position lin.V3
	Forward  lin.V3
	Up       lin.V3
}

// NewListener returns a Listener at position, facing forward with the given
// up reference. Generalizes the teacher's axis-only PlaceListener(x,y,z) to
// a position plus an orientation frame.
func NewListener(position, forward, up lin.V3) Listener {
	return Listener{Position: position, Forward: forward, Up: up}
}

// RelativeDirection returns the unit vector from the listener's position
// toward p: the arrival-direction input postprocess.Attenuator.Gain expects.
func (l Listener) RelativeDirection(p lin.V3) lin.V3 {
	var d lin.V3
	d.Sub(&p, &l.Position)
	d.Unit()
	return d
}

// ClampGain restricts gain to the [0,1] range documented by the teacher's
// Audio.SetGain, used by the bench harness's master output gain control.
func ClampGain(gain float64) float64 {
	if gain < 0 {
		return 0
	}
	if gain > 1 {
		return 1
	}
	return gain
}
