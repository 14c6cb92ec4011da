// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// placement.go validates source/receiver placements before any simulation
// work begins, grounded on the original implementation's placement guards in
// src/combined/src/model/source.cpp and capsule_base.cpp: a placement must
// lie inside the scene's closed surface and must not sit on top of a
// surface (within a small clearance), since either condition makes the
// voxel grid's visibility and point-inside queries unreliable.
package engine

import (
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/math/lin"
)

// surfaceClearance is the minimum distance a placement must keep from the
// nearest triangle hit along each of the six axis directions (+-X, +-Y,
// +-Z); triangles that are closer in other directions are not measured.
// Scenes are expected at architectural (metre) scale;
// this is not derived from the mesh spacing since placement validation runs
// before the waveguide mesh exists.
const surfaceClearance = 1e-4

var axisDirections = [6]lin.V3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// validatePlacement checks a single point, returning outside if it fails the
// inside-the-surface test and onSurface if it is inside but too close to a
// triangle.
func validatePlacement(grid *geometry.VoxelGrid, p lin.V3, outside, onSurface error) error {
	if !grid.PointInside(p) {
		return outside
	}
	for _, dir := range axisDirections {
		if hit, ok := grid.Nearest(p, dir); ok && hit.Distance < surfaceClearance {
			return onSurface
		}
	}
	return nil
}

// validatePlacements checks both the source and receiver positions against
// grid, returning the first failure encountered (source checked first).
func validatePlacements(grid *geometry.VoxelGrid, source, receiver lin.V3) error {
	if err := validatePlacement(grid, source, ErrSourceOutsideMesh, ErrSourceOnSurface); err != nil {
		return err
	}
	if err := validatePlacement(grid, receiver, ErrReceiverOutsideMesh, ErrReceiverOnSurface); err != nil {
		return err
	}
	return nil
}
