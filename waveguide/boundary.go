// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// boundary.go classifies each mesh node by how many of its six rectilinear
// connections leave the mesh (common/boundaries.h's Boundary hierarchy
// generalized here from a boundary *shape* taxonomy to a per-node boundary
// *class* taxonomy: a node can sit on a single wall, an edge where two walls
// meet, or a corner where three or more do) and derives a locally-reactive
// FIR boundary filter from the nearest surface material's per-band
// reflectance.

package waveguide

import (
	"math"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/geometry"
)

// Kind classifies a node by how many of its six neighbours are missing.
type Kind int

const (
	// Interior nodes have all six neighbours present.
	Interior Kind = iota
	// Face nodes are missing exactly one neighbour: a flat wall.
	Face
	// Edge nodes are missing exactly two neighbours: two walls meeting.
	Edge
	// Corner nodes are missing three or more neighbours.
	Corner
)

func classify(missing int) Kind {
	switch missing {
	case 0:
		return Interior
	case 1:
		return Face
	case 2:
		return Edge
	default:
		return Corner
	}
}

// Filter holds the per-node FIR taps approximating a locally-reactive
// boundary's frequency-dependent reflectance.
type Filter struct {
	taps []float32
}

// NewFilter derives a depth-tap FIR from a material's per-band reflectance
// envelope via an inverse discrete cosine transform, so bands that absorb
// more energy contribute proportionally less reflected pressure than bands
// that absorb less.
func NewFilter(mat geometry.Material, depth int) Filter {
	if depth < 1 {
		depth = 1
	}
	reflectance := mat.Reflectance()
	taps := make([]float32, depth)
	for k := 0; k < depth; k++ {
		var sum float32
		for b := 0; b < bands.N; b++ {
			theta := math.Pi * (float64(b) + 0.5) * float64(k) / float64(bands.N)
			sum += reflectance[b] * float32(math.Cos(theta))
		}
		taps[k] = sum / float32(bands.N)
	}
	return Filter{taps: taps}
}

// Apply convolves the filter's taps against mem's history, returning the
// reflected pressure contribution this boundary node injects in place of a
// missing neighbour.
func (f Filter) Apply(mem *Memory) float32 {
	var out float32
	n := len(f.taps)
	for k := 0; k < n; k++ {
		out += f.taps[k] * mem.at(k)
	}
	return out
}

// Memory is a node's ring buffer of past pressure samples, feeding its
// boundary Filter.
type Memory struct {
	history []float32
	pos     int
}

// NewMemory returns a zeroed history buffer of the given depth.
func NewMemory(depth int) *Memory {
	if depth < 1 {
		depth = 1
	}
	return &Memory{history: make([]float32, depth)}
}

// Push records the most recent pressure sample, evicting the oldest.
func (m *Memory) Push(v float32) {
	m.pos = (m.pos - 1 + len(m.history)) % len(m.history)
	m.history[m.pos] = v
}

// at returns the sample k steps before the most recently pushed one.
func (m *Memory) at(k int) float32 {
	return m.history[(m.pos+k)%len(m.history)]
}

// Reset clears the history to silence.
func (m *Memory) Reset() {
	for i := range m.history {
		m.history[i] = 0
	}
	m.pos = 0
}
