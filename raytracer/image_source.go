// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// image_source.go implements the validated specular image-source search
// described in spec.md §4.2's "early reflection" branch: a reflection chain
// is only accepted if every intermediate reflection point actually falls on
// the finite triangle it reflects off of (not just the triangle's infinite
// plane) and every leg of the path is unoccluded. This generalizes the
// classic shoebox image-source construction (geometry.Box.MirrorImageSources,
// used only by tests against an exact enclosure) to arbitrary triangle
// meshes, grounded on the recursive validity-checking algorithm described by
// Borish (1984) and Allen & Berkley (1979).

package raytracer

import (
	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/internal/audio"
	"github.com/wayverb/core/math/lin"
)

const imageSourcePlaneSlack = 1e-6

// EarlyReflections searches every specular reflection chain up to
// cfg.MaxImageSourceOrder walls and returns one Impulse per validated chain;
// a chain whose reflection points match an already accepted chain's is skipped.
// The search mirrors the receiver backward through candidate triangles (the
// standard image-source construction), then validates each candidate chain
// forward from the true source.
func EarlyReflections(grid *geometry.VoxelGrid, source, receiver lin.V3, cfg Config, env environment.Environment) []Impulse {
	scene := grid.Scene()
	var results []Impulse
	var path []uint32
	var images []lin.V3
	var accepted [][]lin.V3

	var search func(image lin.V3)
	search = func(image lin.V3) {
		if len(path) > 0 {
			if points, ok := validateChain(scene, grid, source, receiver, path, images); ok {
				// A reflection point on an edge shared by two coplanar
				// triangles validates once per triangle; keep the first.
				dup := false
				for _, prev := range accepted {
					same := len(prev) == len(points)
					for k := 0; same && k < len(points); k++ {
						same = prev[k].Aeq(&points[k])
					}
					if dup = same; dup {
						break
					}
				}
				if !dup {
					accepted = append(accepted, points)
					dist := chainLength(source, points, receiver)
					vol := chainAttenuation(scene, path, env, dist)
					listener := audio.NewListener(receiver, lin.V3{}, lin.V3{})
					results = append(results, Impulse{Volume: vol, Direction: listener.RelativeDirection(points[0]), Distance: dist})
				}
			}
		}
		if len(path) >= cfg.MaxImageSourceOrder {
			return
		}
		for i := range scene.Triangles {
			tri := uint32(i)
			if len(path) > 0 && path[len(path)-1] == tri {
				continue
			}
			mirrored := mirrorAcrossTriangle(scene, scene.Triangles[i], image)
			path = append(path, tri)
			images = append(images, mirrored)
			search(mirrored)
			path = path[:len(path)-1]
			images = images[:len(images)-1]
		}
	}
	search(receiver)
	return results
}

// validateChain reconstructs the physical reflection point for each wall in
// path (path[0] nearest the receiver, path[len-1] nearest the source) and
// confirms every point lands inside its triangle and every leg is clear.
func validateChain(scene *geometry.Scene, grid *geometry.VoxelGrid, source, receiver lin.V3, path []uint32, images []lin.V3) ([]lin.V3, bool) {
	n := len(path)
	points := make([]lin.V3, n)
	for k := n - 1; k >= 0; k-- {
		from := source
		if k < n-1 {
			from = points[k+1]
		}
		tri := scene.Triangles[path[k]]
		p, ok := intersectPlane(scene, tri, from, images[k])
		if !ok || !pointInTriangle(scene, tri, p) {
			return nil, false
		}
		points[k] = p
	}

	prev := source
	for k := n - 1; k >= 0; k-- {
		if !visibleBetween(grid, prev, points[k]) {
			return nil, false
		}
		prev = points[k]
	}
	if !visibleBetween(grid, prev, receiver) {
		return nil, false
	}
	return points, true
}

func chainLength(source lin.V3, points []lin.V3, receiver lin.V3) float64 {
	total := 0.0
	prev := source
	for k := len(points) - 1; k >= 0; k-- {
		total += prev.Dist(&points[k])
		prev = points[k]
	}
	total += prev.Dist(&receiver)
	return total
}

func chainAttenuation(scene *geometry.Scene, path []uint32, env environment.Environment, distance float64) bands.Vector {
	vol := bands.Fill(1)
	for _, triIdx := range path {
		tri := scene.Triangles[triIdx]
		mat := scene.Materials[tri.Material]
		vol = vol.Mul(mat.Reflectance())
	}
	return env.AttenuateOverDistance(vol, distance)
}

// mirrorAcrossTriangle reflects p across the infinite plane containing tri.
func mirrorAcrossTriangle(scene *geometry.Scene, tri geometry.Triangle, p lin.V3) lin.V3 {
	n := scene.Normal(tri)
	a, _, _ := scene.Positions(tri)
	var toP lin.V3
	toP.Sub(&p, &a)
	d := toP.Dot(&n)
	var mirrored lin.V3
	mirrored.Scale(&n, -2*d)
	mirrored.Add(&mirrored, &p)
	return mirrored
}

// intersectPlane finds where the segment (from,to) crosses the plane
// containing tri.
func intersectPlane(scene *geometry.Scene, tri geometry.Triangle, from, to lin.V3) (lin.V3, bool) {
	n := scene.Normal(tri)
	a, _, _ := scene.Positions(tri)
	var dir lin.V3
	dir.Sub(&to, &from)
	denom := dir.Dot(&n)
	if denom == 0 {
		return lin.V3{}, false
	}
	var toA lin.V3
	toA.Sub(&a, &from)
	t := toA.Dot(&n) / denom
	if t < -imageSourcePlaneSlack || t > 1+imageSourcePlaneSlack {
		return lin.V3{}, false
	}
	var p lin.V3
	p.Scale(&dir, t)
	p.Add(&p, &from)
	return p, true
}

// pointInTriangle reports whether p, assumed coplanar with tri, lies within
// tri's bounds via barycentric coordinates.
func pointInTriangle(scene *geometry.Scene, tri geometry.Triangle, p lin.V3) bool {
	a, b, c := scene.Positions(tri)
	var v0, v1, v2 lin.V3
	v0.Sub(&b, &a)
	v1.Sub(&c, &a)
	v2.Sub(&p, &a)
	d00 := v0.Dot(&v0)
	d01 := v0.Dot(&v1)
	d11 := v1.Dot(&v1)
	d20 := v2.Dot(&v0)
	d21 := v2.Dot(&v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	const slack = 1e-6
	return u >= -slack && v >= -slack && w >= -slack
}

// visibleBetween is grid.Visible with both endpoints nudged slightly inward
// along the segment so a point lying exactly on a reflecting triangle does
// not register a spurious self-occlusion.
func visibleBetween(grid *geometry.VoxelGrid, a, b lin.V3) bool {
	var dir lin.V3
	dir.Sub(&b, &a)
	dist := dir.Len()
	if dist < 1e-9 {
		return true
	}
	dir.Scale(&dir, 1/dist)
	const nudge = 1e-5
	var start, end lin.V3
	start.Scale(&dir, nudge)
	start.Add(&start, &a)
	end.Scale(&dir, -nudge)
	end.Add(&end, &b)
	return grid.Visible(start, end)
}
