// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// grid.go implements the voxelised scene (spec.md §4.1): a uniform spatial
// hash over the scene's triangles, walked with a 3D-DDA (Amanatides & Woo)
// ray march so that ray-triangle queries only test the handful of triangles
// that actually overlap the cells the ray passes through. The broad-phase
// registration (triangle AABB against grid cells) is grounded on
// physics/caster.go and physics/shape.go's Aabb-driven collision pattern
// from the teacher's physics package, generalized here from body-pair
// collision to ray-triangle spatial hashing.

package geometry

import (
	"math"

	"github.com/wayverb/core/math/lin"
)

// VoxelGrid is an immutable, read-only spatial index over a Scene's
// triangles. Both the ray tracer and the waveguide mesh builder hold shared,
// immutable borrows of the same VoxelGrid for the duration of a run.
type VoxelGrid struct {
	scene    *Scene
	bounds   Box
	dim      int
	cellSize lin.V3
	cells    [][]uint32
}

// Build computes the scene's AABB, pads it, partitions it into dim³ cells,
// and registers every triangle in every cell its own (padded-free) AABB
// overlaps. dim is typically 1024 for the fine surface hash used by ray
// queries, and far smaller for the coarser grid used to cache waveguide
// voxelisation.
func Build(scene *Scene, dim int, padding float64) *VoxelGrid {
	bounds := sceneBounds(scene).Pad(padding)
	size := bounds.Size()
	g := &VoxelGrid{
		scene:  scene,
		bounds: bounds,
		dim:    dim,
		cellSize: lin.V3{
			X: size.X / float64(dim),
			Y: size.Y / float64(dim),
			Z: size.Z / float64(dim),
		},
		cells: make([][]uint32, dim*dim*dim),
	}
	for i, tri := range scene.Triangles {
		a, b, c := scene.Positions(tri)
		triBox := BoxOf(a, b, c)
		g.registerTriangle(uint32(i), triBox)
	}
	return g
}

func sceneBounds(scene *Scene) Box {
	if len(scene.Vertices) == 0 {
		return Box{}
	}
	box := Box{Min: scene.Vertices[0], Max: scene.Vertices[0]}
	for _, v := range scene.Vertices[1:] {
		box.Extend(v)
	}
	return box
}

// Scene returns the underlying immutable scene.
func (g *VoxelGrid) Scene() *Scene { return g.scene }

// Bounds returns the grid's (padded) bounding box.
func (g *VoxelGrid) Bounds() Box { return g.bounds }

// Dim returns the number of cells along each axis.
func (g *VoxelGrid) Dim() int { return g.dim }

func (g *VoxelGrid) cellIndex(cx, cy, cz int) int {
	return (cx*g.dim+cy)*g.dim + cz
}

func (g *VoxelGrid) cellCoord(p lin.V3) (cx, cy, cz int) {
	cx = clampCell(int(math.Floor((p.X-g.bounds.Min.X)/g.cellSize.X)), g.dim)
	cy = clampCell(int(math.Floor((p.Y-g.bounds.Min.Y)/g.cellSize.Y)), g.dim)
	cz = clampCell(int(math.Floor((p.Z-g.bounds.Min.Z)/g.cellSize.Z)), g.dim)
	return
}

func clampCell(c, dim int) int {
	if c < 0 {
		return 0
	}
	if c >= dim {
		return dim - 1
	}
	return c
}

func (g *VoxelGrid) registerTriangle(tri uint32, triBox Box) {
	minX, minY, minZ := g.cellCoord(triBox.Min)
	maxX, maxY, maxZ := g.cellCoord(triBox.Max)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for cz := minZ; cz <= maxZ; cz++ {
				idx := g.cellIndex(cx, cy, cz)
				g.cells[idx] = append(g.cells[idx], tri)
			}
		}
	}
}

// Visitor is called once per cell the ray's 3D-DDA walk passes through, with
// the triangle indices registered in that cell. It returns the nearest hit
// it found among those triangles, if any, and which triangle that was.
type Visitor func(triangles []uint32) (distance float64, triangle uint32, hit bool)

// Traverse walks the grid cells along the ray (origin, dir) in order,
// nearest first, calling visit for each non-empty cell. It stops once a hit
// has been reported and no closer cell remains to test (a triangle hit by
// the ray is reported before any cell whose minimum entry distance exceeds
// the hit distance).
func (g *VoxelGrid) Traverse(origin, dir lin.V3, visit Visitor) (Hit, bool) {
	entry, exit, ok := g.bounds.IntersectRay(origin, dir)
	if !ok || exit < 0 {
		return Hit{}, false
	}
	if entry < 0 {
		entry = 0
	}

	start := lin.V3{}
	start.Scale(&dir, entry)
	start.Add(&start, &origin)
	cx, cy, cz := g.cellCoord(start)

	step := [3]int{sign(dir.X), sign(dir.Y), sign(dir.Z)}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	cellMin := [3]float64{g.bounds.Min.X, g.bounds.Min.Y, g.bounds.Min.Z}
	cellSize := [3]float64{g.cellSize.X, g.cellSize.Y, g.cellSize.Z}
	cell := [3]int{cx, cy, cz}

	var tMax, tDelta [3]float64
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
			continue
		}
		tDelta[i] = math.Abs(cellSize[i] / d[i])
		boundary := cellMin[i] + float64(cell[i]+maxInt(step[i], 0))*cellSize[i]
		tMax[i] = (boundary - originAxis(origin, i)) / d[i]
	}

	best := math.Inf(1)
	var bestTriangle uint32
	found := false

	for {
		idx := g.cellIndex(cell[0], cell[1], cell[2])
		if tris := g.cells[idx]; len(tris) > 0 {
			if dist, tri, hit := visit(tris); hit && dist < best {
				best = dist
				bestTriangle = tri
				found = true
			}
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		if found && tMax[axis] > best {
			break
		}
		if tMax[axis] > exit {
			break
		}
		cell[axis] += step[axis]
		if cell[axis] < 0 || cell[axis] >= g.dim {
			break
		}
		tMax[axis] += tDelta[axis]
	}

	if !found {
		return Hit{}, false
	}
	var point lin.V3
	point.Scale(&dir, best)
	point.Add(&point, &origin)
	return Hit{Triangle: bestTriangle, Distance: best, Point: point}, true
}

// Nearest finds the nearest triangle the ray (origin, dir) intersects,
// filling in the hit's normal from the scene. This is the primary
// ray-triangle query used by the ray tracer and the waveguide boundary
// classifier; Traverse remains available for custom visitors (eg.
// visualisation hooks that want to see every cell the ray passes through).
func (g *VoxelGrid) Nearest(origin, dir lin.V3) (Hit, bool) {
	hit, ok := g.Traverse(origin, dir, func(tris []uint32) (float64, uint32, bool) {
		best := math.Inf(1)
		var bestTri uint32
		found := false
		for _, tri := range tris {
			a, b, c := g.scene.Positions(g.scene.Triangles[tri])
			if dist, hit := intersectTriangle(origin, dir, a, b, c); hit && dist < best {
				best = dist
				bestTri = tri
				found = true
			}
		}
		return best, bestTri, found
	})
	if !ok {
		return Hit{}, false
	}
	hit.Normal = g.scene.Normal(g.scene.Triangles[hit.Triangle])
	return hit, true
}

func originAxis(o lin.V3, i int) float64 {
	switch i {
	case 0:
		return o.X
	case 1:
		return o.Y
	default:
		return o.Z
	}
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Visible reports whether the straight segment from a to b is unoccluded by
// any triangle, used by the ray tracer's direct-sound test and diffuse-rain
// shadow rays.
func (g *VoxelGrid) Visible(a, b lin.V3) bool {
	var dir lin.V3
	dir.Sub(&b, &a)
	dist := dir.Len()
	if dist < 1e-9 {
		return true
	}
	dir.Scale(&dir, 1/dist)
	hit, ok := g.Nearest(a, dir)
	if !ok {
		return true
	}
	const epsilon = 1e-4
	return hit.Distance > dist-epsilon
}

// PointInside reports whether p lies strictly inside the scene's closed
// surface, using a parity test: cast a ray along +X from p and count
// triangle crossings. An odd crossing count means the point is inside.
func (g *VoxelGrid) PointInside(p lin.V3) bool {
	if !g.bounds.Contains(p) {
		return false
	}
	dir := lin.V3{X: 1, Y: 0, Z: 0}
	var crossings []float64
	_, exit, ok := g.bounds.IntersectRay(p, dir)
	if !ok {
		return false
	}
	cx, cy, cz := g.cellCoord(p)
	// Walk every cell along +X from p's cell to the grid boundary, testing
	// every registered triangle once. Hits at the same distance (the ray
	// passing through an edge or vertex shared by several triangles) count
	// as a single crossing.
	seen := map[uint32]bool{}
	for cxi := cx; cxi < g.dim; cxi++ {
		idx := g.cellIndex(cxi, cy, cz)
		for _, tri := range g.cells[idx] {
			if seen[tri] {
				continue
			}
			seen[tri] = true
			a, b, c := g.scene.Positions(g.scene.Triangles[tri])
			dist, hit := intersectTriangle(p, dir, a, b, c)
			if !hit || dist > exit {
				continue
			}
			dup := false
			for _, d := range crossings {
				if math.Abs(d-dist) < 1e-9 {
					dup = true
					break
				}
			}
			if !dup {
				crossings = append(crossings, dist)
			}
		}
	}
	return len(crossings)%2 == 1
}
