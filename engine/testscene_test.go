// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package engine

import (
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/math/lin"
)

// cubeScene returns a closed axis-aligned cube from the origin to
// (side,side,side), every face sharing material 0.
func cubeScene(side float64, mat geometry.Material) *geometry.Scene {
	v := []lin.V3{
		{X: 0, Y: 0, Z: 0}, {X: side, Y: 0, Z: 0}, {X: side, Y: side, Z: 0}, {X: 0, Y: side, Z: 0},
		{X: 0, Y: 0, Z: side}, {X: side, Y: 0, Z: side}, {X: side, Y: side, Z: side}, {X: 0, Y: side, Z: side},
	}
	quad := func(a, b, c, d uint32) []geometry.Triangle {
		return []geometry.Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}}
	}
	var tris []geometry.Triangle
	tris = append(tris, quad(0, 3, 2, 1)...) // z=0
	tris = append(tris, quad(4, 5, 6, 7)...) // z=side
	tris = append(tris, quad(0, 1, 5, 4)...) // y=0
	tris = append(tris, quad(3, 7, 6, 2)...) // y=side
	tris = append(tris, quad(0, 4, 7, 3)...) // x=0
	tris = append(tris, quad(1, 2, 6, 5)...) // x=side
	return &geometry.Scene{Vertices: v, Triangles: tris, Materials: []geometry.Material{mat}}
}

// boxScene is cubeScene generalized to independent X/Y/Z extents.
func boxScene(dims lin.V3, mat geometry.Material) *geometry.Scene {
	v := []lin.V3{
		{X: 0, Y: 0, Z: 0}, {X: dims.X, Y: 0, Z: 0}, {X: dims.X, Y: dims.Y, Z: 0}, {X: 0, Y: dims.Y, Z: 0},
		{X: 0, Y: 0, Z: dims.Z}, {X: dims.X, Y: 0, Z: dims.Z}, {X: dims.X, Y: dims.Y, Z: dims.Z}, {X: 0, Y: dims.Y, Z: dims.Z},
	}
	quad := func(a, b, c, d uint32) []geometry.Triangle {
		return []geometry.Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}}
	}
	var tris []geometry.Triangle
	tris = append(tris, quad(0, 3, 2, 1)...)
	tris = append(tris, quad(4, 5, 6, 7)...)
	tris = append(tris, quad(0, 1, 5, 4)...)
	tris = append(tris, quad(3, 7, 6, 2)...)
	tris = append(tris, quad(0, 4, 7, 3)...)
	tris = append(tris, quad(1, 2, 6, 5)...)
	return &geometry.Scene{Vertices: v, Triangles: tris, Materials: []geometry.Material{mat}}
}
