// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// mesh.go builds the rectilinear finite-difference waveguide mesh (spec.md
// §4.3): a Courant-limited lattice of nodes, each connected to up to six
// axis-aligned neighbours, updated one explicit FDTD step at a time via the
// compute.Context kernel dispatch abstraction also used by the ray tracer.
// The per-node neighbour-index layout (Node.Ports, -1 for a missing
// connection) is grounded on the original implementation's Node type in
// lib/waveguide.cpp (ports []int, inside bool), generalized here from a
// tetrahedral connectivity to the fixed six-neighbour rectilinear case.

package waveguide

import (
	"errors"
	"math"

	"github.com/wayverb/core/compute"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/math/lin"
)

// ErrSourceOutsideMesh is returned when a requested source position has no
// mesh node within a reasonable search radius.
var ErrSourceOutsideMesh = errors.New("waveguide: source position outside mesh")

// ErrReceiverOutsideMesh is the receiver-position counterpart of
// ErrSourceOutsideMesh.
var ErrReceiverOutsideMesh = errors.New("waveguide: receiver position outside mesh")

// neighbourOffsets enumerates the six rectilinear directions in a fixed
// order; Node.Ports follows this same order: +X, -X, +Y, -Y, +Z, -Z.
var neighbourOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// Node is one point in the rectilinear lattice.
type Node struct {
	Position lin.V3
	Ports    [6]int32 // neighbour node index, or -1 if missing
	Inside   bool
	Kind     Kind
	Filter   Filter
	Memory   *Memory
}

// Mesh is the immutable lattice topology plus the two pressure buffers
// (current and previous step) the FDTD update reads and writes.
type Mesh struct {
	nodes            []Node
	dimX, dimY, dimZ int
	spacing          float64
	fs               float64
	prev, curr       []float32
}

// Build voxelises grid's bounding box at the Courant-limited spacing implied
// by env and fs, classifies every inside node's boundary exposure, and
// derives a boundary Filter for every node touching the mesh's exterior.
func Build(grid *geometry.VoxelGrid, env environment.Environment, fs float64, cfg Config) *Mesh {
	h := env.SpeedOfSound * cfg.CourantNumber / fs
	bounds := grid.Bounds()
	size := bounds.Size()
	dimX := int(math.Ceil(size.X/h)) + 1
	dimY := int(math.Ceil(size.Y/h)) + 1
	dimZ := int(math.Ceil(size.Z/h)) + 1

	m := &Mesh{dimX: dimX, dimY: dimY, dimZ: dimZ, spacing: h, fs: fs}
	total := dimX * dimY * dimZ
	m.nodes = make([]Node, total)
	m.prev = make([]float32, total)
	m.curr = make([]float32, total)

	position := func(x, y, z int) lin.V3 {
		return lin.V3{
			X: bounds.Min.X + float64(x)*h,
			Y: bounds.Min.Y + float64(y)*h,
			Z: bounds.Min.Z + float64(z)*h,
		}
	}

	inside := make([]bool, total)
	for x := 0; x < dimX; x++ {
		for y := 0; y < dimY; y++ {
			for z := 0; z < dimZ; z++ {
				inside[m.index(x, y, z)] = grid.PointInside(position(x, y, z))
			}
		}
	}

	for x := 0; x < dimX; x++ {
		for y := 0; y < dimY; y++ {
			for z := 0; z < dimZ; z++ {
				i := m.index(x, y, z)
				node := &m.nodes[i]
				node.Position = position(x, y, z)
				node.Inside = inside[i]
				for p := range node.Ports {
					node.Ports[p] = -1
				}
				if !node.Inside {
					continue
				}

				missing := 0
				haveMissingDir := false
				var missingDir lin.V3
				for d, off := range neighbourOffsets {
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					if !m.validCoord(nx, ny, nz) || !inside[m.index(nx, ny, nz)] {
						missing++
						if !haveMissingDir {
							missingDir = lin.V3{X: float64(off[0]), Y: float64(off[1]), Z: float64(off[2])}
							haveMissingDir = true
						}
						continue
					}
					node.Ports[d] = int32(m.index(nx, ny, nz))
				}
				node.Kind = classify(missing)
				if missing == 0 {
					continue
				}

				mat := geometry.Material{} // fully reflective fallback if no surface is found
				if hit, ok := grid.Nearest(node.Position, missingDir); ok {
					tri := grid.Scene().Triangles[hit.Triangle]
					mat = grid.Scene().Materials[tri.Material]
				}
				node.Filter = NewFilter(mat, cfg.BoundaryDepth)
				node.Memory = NewMemory(cfg.BoundaryDepth)
			}
		}
	}
	return m
}

func (m *Mesh) index(x, y, z int) int { return (x*m.dimY+y)*m.dimZ + z }

func (m *Mesh) validCoord(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < m.dimX && y < m.dimY && z < m.dimZ
}

// Spacing returns the mesh's node spacing in metres.
func (m *Mesh) Spacing() float64 { return m.spacing }

// SampleRate returns the mesh's update rate in Hz.
func (m *Mesh) SampleRate() float64 { return m.fs }

// NodeCount returns the total number of lattice positions, inside and
// outside the mesh.
func (m *Mesh) NodeCount() int { return len(m.nodes) }

// StepCount returns the number of FDTD steps needed to cover maxTime seconds
// of simulated audio at the mesh's sample rate (spec.md §4.4).
func (m *Mesh) StepCount(maxTime float64) int {
	n := int(math.Ceil(maxTime * m.fs))
	if n < 1 {
		n = 1
	}
	return n
}

// NearestInsideNode finds the mesh node closest to p, searching outward from
// p's containing lattice cell until an Inside node is found or the search
// exhausts a small fixed radius. A p outside the lattice's extent has no
// containing cell and is reported as not found.
func (m *Mesh) NearestInsideNode(p lin.V3) (int, bool) {
	lo, hi := m.nodes[0].Position, m.nodes[len(m.nodes)-1].Position
	if p.X < lo.X || p.Y < lo.Y || p.Z < lo.Z || p.X > hi.X || p.Y > hi.Y || p.Z > hi.Z {
		return 0, false
	}
	cx, cy, cz := m.latticeCoord(p)
	const maxRadius = 3
	for r := 0; r <= maxRadius; r++ {
		best := -1
		bestDist := math.Inf(1)
		for x := cx - r; x <= cx+r; x++ {
			for y := cy - r; y <= cy+r; y++ {
				for z := cz - r; z <= cz+r; z++ {
					if !m.validCoord(x, y, z) {
						continue
					}
					i := m.index(x, y, z)
					if !m.nodes[i].Inside {
						continue
					}
					d := m.nodes[i].Position.Dist(&p)
					if d < bestDist {
						bestDist = d
						best = i
					}
				}
			}
		}
		if best >= 0 {
			return best, true
		}
	}
	return 0, false
}

func (m *Mesh) latticeCoord(p lin.V3) (x, y, z int) {
	x = clampInt(int(math.Round((p.X-m.nodes[0].Position.X)/m.spacing)), 0, m.dimX-1)
	y = clampInt(int(math.Round((p.Y-m.nodes[0].Position.Y)/m.spacing)), 0, m.dimY-1)
	z = clampInt(int(math.Round((p.Z-m.nodes[0].Position.Z)/m.spacing)), 0, m.dimZ-1)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Step advances every node by one explicit FDTD update, dispatched as a
// single compute.Context kernel run (one work-item per lattice position).
func (m *Mesh) Step(ctx compute.Context) error {
	next := make([]float32, len(m.nodes))
	kernel, err := ctx.CompileKernel("waveguide.step", func(i int) {
		next[i] = m.stepNode(i)
	})
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(kernel, len(m.nodes)); err != nil {
		return err
	}
	for i := range m.nodes {
		if m.nodes[i].Memory != nil {
			m.nodes[i].Memory.Push(m.curr[i])
		}
	}
	m.prev, m.curr = m.curr, next
	return nil
}

// stepNode computes node i's next pressure sample from the standard
// six-connected rectilinear waveguide mesh scattering rule: p[n+1] =
// (2/6)*sum(neighbours) - p[n-1]. Each missing neighbour is replaced by the
// node's boundary filter output, so the division is always by six.
func (m *Mesh) stepNode(i int) float32 {
	node := &m.nodes[i]
	if !node.Inside {
		return 0
	}
	var sum float32
	missing := 0
	for _, port := range node.Ports {
		if port >= 0 {
			sum += m.curr[port]
		} else {
			missing++
		}
	}
	if missing > 0 && node.Memory != nil {
		sum += float32(missing) * node.Filter.Apply(node.Memory)
	}
	return sum/3 - m.prev[i]
}

// Reset zeroes both pressure buffers and every node's boundary memory.
func (m *Mesh) Reset() {
	for i := range m.prev {
		m.prev[i] = 0
		m.curr[i] = 0
	}
	for i := range m.nodes {
		if m.nodes[i].Memory != nil {
			m.nodes[i].Memory.Reset()
		}
	}
}
