// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package waveguide

import (
	"testing"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/compute"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/math/lin"
)

// unitCubeScene returns a closed 1x1x1 box with a partially absorptive
// material, used to exercise boundary classification and filter derivation.
func unitCubeScene() *geometry.Scene {
	v := []lin.V3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
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
	mat := geometry.Material{Absorption: bands.Fill(0.2), Scattering: bands.Fill(0.3)}
	return &geometry.Scene{Vertices: v, Triangles: tris, Materials: []geometry.Material{mat}}
}

func testMesh(t *testing.T) *Mesh {
	t.Helper()
	grid := geometry.Build(unitCubeScene(), 8, 0.1)
	env := environment.Default()
	cfg := DefaultConfig()
	cfg.CourantNumber = 1 // coarser spacing keeps the test mesh small
	fs := env.SpeedOfSound * cfg.CourantNumber / 0.2
	return Build(grid, env, fs, cfg)
}

func TestBuildClassifiesNodes(t *testing.T) {
	m := testMesh(t)
	center, ok := m.NearestInsideNode(lin.V3{X: 0.5, Y: 0.5, Z: 0.5})
	if !ok {
		t.Fatal("expected the cube's centre to resolve to an inside node")
	}
	if m.nodes[center].Kind != Interior {
		t.Errorf("centre node kind = %v, want Interior", m.nodes[center].Kind)
	}

	var sawBoundary bool
	for _, n := range m.nodes {
		if n.Inside && n.Kind != Interior {
			sawBoundary = true
			if n.Memory == nil {
				t.Error("boundary node missing its Memory")
			}
		}
	}
	if !sawBoundary {
		t.Error("expected at least one boundary node in a closed cube mesh")
	}
}

func TestNearestInsideNodeRejectsExterior(t *testing.T) {
	m := testMesh(t)
	if _, ok := m.NearestInsideNode(lin.V3{X: -5, Y: -5, Z: -5}); ok {
		t.Error("expected a point far outside the mesh to have no nearest inside node")
	}
}

func TestDriverInjectAndReadRoundTrip(t *testing.T) {
	m := testMesh(t)
	d, err := NewDriver(m, lin.V3{X: 0.3, Y: 0.3, Z: 0.3}, lin.V3{X: 0.6, Y: 0.6, Z: 0.6})
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	d.Inject(1)
	if got := d.Read(); got != 0 {
		t.Errorf("expected receiver to read 0 before any propagation step, got %v", got)
	}

	ctx := compute.NewHostWithWorkers(2)
	if err := m.Step(ctx); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestDriverRejectsOutsidePositions(t *testing.T) {
	m := testMesh(t)
	if _, err := NewDriver(m, lin.V3{X: -5, Y: -5, Z: -5}, lin.V3{X: 0.5, Y: 0.5, Z: 0.5}); err != ErrSourceOutsideMesh {
		t.Errorf("expected ErrSourceOutsideMesh, got %v", err)
	}
	if _, err := NewDriver(m, lin.V3{X: 0.5, Y: 0.5, Z: 0.5}, lin.V3{X: -5, Y: -5, Z: -5}); err != ErrReceiverOutsideMesh {
		t.Errorf("expected ErrReceiverOutsideMesh, got %v", err)
	}
}

func TestStepCount(t *testing.T) {
	m := testMesh(t)
	n := m.StepCount(1.0)
	want := int(m.SampleRate())
	if n < want {
		t.Errorf("StepCount(1.0) = %d, want at least %d", n, want)
	}
}
