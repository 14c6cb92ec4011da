// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// box.go is grounded on wayverb's src/core/src/geo/box.cpp: an axis-aligned
// box helper used both for the voxel grid's own bounding box and, in tests,
// as the exact shoebox scenario used for image-source validation (spec.md
// §4.2, §8 "Image-source agreement (shoebox)").

package geometry

import (
	"math"

	"github.com/wayverb/core/math/lin"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max lin.V3
}

// BoxOf returns the smallest Box enclosing the three given points.
func BoxOf(a, b, c lin.V3) Box {
	box := Box{Min: a, Max: a}
	box.Extend(b)
	box.Extend(c)
	return box
}

// Extend grows the box, if necessary, to include p.
func (box *Box) Extend(p lin.V3) {
	box.Min.X = math.Min(box.Min.X, p.X)
	box.Min.Y = math.Min(box.Min.Y, p.Y)
	box.Min.Z = math.Min(box.Min.Z, p.Z)
	box.Max.X = math.Max(box.Max.X, p.X)
	box.Max.Y = math.Max(box.Max.Y, p.Y)
	box.Max.Z = math.Max(box.Max.Z, p.Z)
}

// Union returns the smallest box enclosing box and other.
func (box Box) Union(other Box) Box {
	box.Extend(other.Min)
	box.Extend(other.Max)
	return box
}

// Pad returns box grown by margin on every side.
func (box Box) Pad(margin float64) Box {
	m := lin.V3{X: margin, Y: margin, Z: margin}
	box.Min.Sub(&box.Min, &m)
	box.Max.Add(&box.Max, &m)
	return box
}

// Size returns the box's extent along each axis.
func (box Box) Size() lin.V3 {
	var s lin.V3
	s.Sub(&box.Max, &box.Min)
	return s
}

// Contains reports whether p lies within the box (inclusive).
func (box Box) Contains(p lin.V3) bool {
	return p.X >= box.Min.X && p.X <= box.Max.X &&
		p.Y >= box.Min.Y && p.Y <= box.Max.Y &&
		p.Z >= box.Min.Z && p.Z <= box.Max.Z
}

// IntersectsAABB reports whether box overlaps other, used when registering a
// triangle's bounding box against voxel grid cells.
func (box Box) IntersectsAABB(other Box) bool {
	return box.Min.X <= other.Max.X && box.Max.X >= other.Min.X &&
		box.Min.Y <= other.Max.Y && box.Max.Y >= other.Min.Y &&
		box.Min.Z <= other.Max.Z && box.Max.Z >= other.Min.Z
}

// IntersectRay returns the entry/exit distances of the ray (origin, dir)
// through the box using the slab method. ok is false if the ray misses.
func (box Box) IntersectRay(origin, dir lin.V3) (tMin, tMax float64, ok bool) {
	tMin, tMax = math.Inf(-1), math.Inf(1)
	mn := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	mx := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < mn[i] || o[i] > mx[i] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (mn[i] - o[i]) * inv
		t2 := (mx[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// ImageSource is one exact mirror-image source together with its reflection
// order (number of walls it was reflected across).
type ImageSource struct {
	Position lin.V3
	Order    int
}

// MirrorImageSources enumerates the exact image-source positions for a
// shoebox up to the given reflection order, used only by the image-source
// validation tests (spec.md §4.2, §8). The room is tiled along each axis:
// copy k of the room is a translation by k*size for even k and a mirrored
// (flipped) translation for odd k, which is the standard shoebox
// image-source construction (Allen & Berkley 1979). Order 0 (the real
// source) is excluded from the result.
func (box Box) MirrorImageSources(source lin.V3, maxOrder int) []ImageSource {
	size := box.Size()
	local := lin.V3{}
	local.Sub(&source, &box.Min)

	result := []ImageSource{}
	for kx := -maxOrder; kx <= maxOrder; kx++ {
		for ky := -maxOrder; ky <= maxOrder; ky++ {
			for kz := -maxOrder; kz <= maxOrder; kz++ {
				order := absInt(kx) + absInt(ky) + absInt(kz)
				if order == 0 || order > maxOrder {
					continue
				}
				pos := lin.V3{
					X: box.Min.X + tileAxis(local.X, size.X, kx),
					Y: box.Min.Y + tileAxis(local.Y, size.Y, ky),
					Z: box.Min.Z + tileAxis(local.Z, size.Z, kz),
				}
				result = append(result, ImageSource{Position: pos, Order: order})
			}
		}
	}
	return result
}

// tileAxis returns the position of copy k (k may be negative) of a 1D
// corridor of the given size, where the local source offset x lies in
// [0,size]. Even copies preserve orientation; odd copies are mirrored.
func tileAxis(x, size float64, k int) float64 {
	if k%2 == 0 {
		return float64(k)*size + x
	}
	return float64(k)*size + size - x
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
