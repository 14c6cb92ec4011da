// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// attenuator.go implements the Attenuator tagged union (spec.md §4.5/§9):
// Null (omnidirectional passthrough), Microphone (a cardioid-family polar
// pattern), and Hrtf (binaural gain/delay sourced from an external
// collaborator function, since HRTF coefficient data itself is out of scope
// for the simulator core). The directional dot-product math is grounded on
// physics/caster.go's ray-plane dot products; the listener-relative framing
// follows the teacher audio package's PlaceListener/PlaySound convention.
package postprocess

import (
	"math"

	"github.com/wayverb/core/math/lin"
)

// Kind identifies which variant of the Attenuator union is active.
type Kind int

const (
	Null Kind = iota
	Microphone
	Hrtf
)

// HrtfLookup supplies a gain (and, implicitly, the delay baked into its
// returned value) for a given direction and output channel. It is the
// external collaborator named in spec.md §1: HRTF coefficient data is not
// computed by this module.
type HrtfLookup func(azimuth, elevation float64, channel int) float32

// Attenuator is a tagged union over the three ways a receiver can weight an
// arriving impulse by its direction of arrival.
type Attenuator struct {
	kind     Kind
	pointing lin.V3
	up       lin.V3
	shape    float32
	channel  int
	lookup   HrtfLookup
}

// NewNullAttenuator returns an omnidirectional attenuator: every direction
// has unit gain.
func NewNullAttenuator() Attenuator { return Attenuator{kind: Null} }

// NewMicrophoneAttenuator returns a cardioid-family microphone pointed along
// pointing. shape 0 is omnidirectional, 0.5 is a cardioid, 1 is a
// figure-eight (bidirectional) pattern.
func NewMicrophoneAttenuator(pointing lin.V3, shape float32) Attenuator {
	return Attenuator{kind: Microphone, pointing: pointing, shape: shape}
}

// NewHrtfAttenuator returns a binaural attenuator for the given output
// channel, resolving azimuth/elevation against the pointing/up frame and
// delegating the actual gain to lookup.
func NewHrtfAttenuator(pointing, up lin.V3, channel int, lookup HrtfLookup) Attenuator {
	return Attenuator{kind: Hrtf, pointing: pointing, up: up, channel: channel, lookup: lookup}
}

// Gain returns this attenuator's gain for an impulse arriving from the
// given unit direction (receiver-relative, pointing back toward the source
// or last reflection point).
func (a Attenuator) Gain(direction lin.V3) float32 {
	switch a.kind {
	case Microphone:
		return cardioidGain(a.pointing, direction, a.shape)
	case Hrtf:
		if a.lookup == nil {
			return 1
		}
		az, el := azimuthElevation(a.pointing, a.up, direction)
		return a.lookup(az, el, a.channel)
	default:
		return 1
	}
}

// Channel returns the attenuator's output channel index; Null and
// Microphone attenuators are always single-channel (0).
func (a Attenuator) Channel() int {
	if a.kind == Hrtf {
		return a.channel
	}
	return 0
}

func cardioidGain(pointing, direction lin.V3, shape float32) float32 {
	p, d := pointing, direction
	p.Unit()
	d.Unit()
	cosTheta := p.Dot(&d)
	return (1 - shape) + shape*float32(cosTheta)
}

// azimuthElevation resolves direction into the local frame defined by
// forward and up: azimuth is the angle from forward in the forward/right
// plane, elevation is the angle out of that plane toward up.
func azimuthElevation(forward, up, direction lin.V3) (azimuth, elevation float64) {
	var right lin.V3
	right.Cross(&forward, &up)
	right.Unit()
	var trueUp lin.V3
	trueUp.Cross(&right, &forward)
	trueUp.Unit()

	d := direction
	d.Unit()
	x := d.Dot(&right)
	y := d.Dot(&trueUp)
	z := d.Dot(&forward)
	azimuth = math.Atan2(x, z)
	elevation = math.Asin(clampUnit(y))
	return
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
