// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geometry holds the immutable scene representation used by both
// the ray tracer and the waveguide mesh builder: triangles over a shared
// vertex array, per-triangle materials, the scene's voxel grid (a uniform
// spatial hash used for fast ray-triangle and point-in-mesh queries), and an
// axis-aligned Box type (the voxel grid's bounds and the exact
// axis-aligned-box image-source enumerator).
package geometry

import (
	"math"

	"github.com/wayverb/core/math/lin"
)

// Triangle is three indices into a shared vertex array plus one index into
// a shared material table. Immutable after scene construction.
type Triangle struct {
	A, B, C  uint32
	Material uint32
}

// Scene is the immutable, read-only triangle mesh shared by both simulators
// for the duration of a run.
type Scene struct {
	Vertices  []lin.V3
	Triangles []Triangle
	Materials []Material
}

// Positions returns the three world-space vertices of triangle t.
func (s *Scene) Positions(t Triangle) (a, b, c lin.V3) {
	return s.Vertices[t.A], s.Vertices[t.B], s.Vertices[t.C]
}

// Normal returns the unit normal of triangle t using a right-handed winding
// (A,B,C counter-clockwise as seen from the side the normal points to).
func (s *Scene) Normal(t Triangle) lin.V3 {
	a, b, c := s.Positions(t)
	var e1, e2, n lin.V3
	e1.Sub(&b, &a)
	e2.Sub(&c, &a)
	n.Cross(&e1, &e2)
	n.Unit()
	return n
}

// Hit describes a ray-triangle intersection.
type Hit struct {
	Triangle uint32
	Distance float64
	Point    lin.V3
	Normal   lin.V3
}

// intersectTriangle is the Möller-Trumbore ray-triangle intersection test.
// It returns the hit distance along the ray and true if the ray (starting at
// origin, with the given direction, which need not be a unit vector) hits
// the triangle at a positive distance.
func intersectTriangle(origin, dir, a, b, c lin.V3) (dist float64, hit bool) {
	const epsilon = 1e-9
	var e1, e2, h, s, q lin.V3
	e1.Sub(&b, &a)
	e2.Sub(&c, &a)
	h.Cross(&dir, &e2)
	det := e1.Dot(&h)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	invDet := 1 / det
	s.Sub(&origin, &a)
	u := s.Dot(&h) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q.Cross(&s, &e1)
	v := dir.Dot(&q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(&q) * invDet
	if t <= epsilon {
		return 0, false
	}
	return t, true
}
