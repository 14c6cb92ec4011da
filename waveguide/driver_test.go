// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package waveguide

import (
	"testing"

	"github.com/wayverb/core/math/lin"
)

func TestCorrectionOffsetNonNegative(t *testing.T) {
	m := testMesh(t)
	d, err := NewDriver(m, lin.V3{X: 0.33, Y: 0.47, Z: 0.51}, lin.V3{X: 0.6, Y: 0.6, Z: 0.6})
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	if off := d.CorrectionOffset(); off < 0 {
		t.Errorf("CorrectionOffset = %d, want >= 0", off)
	}
}

func TestCorrectionOffsetZeroWhenSnappedExactly(t *testing.T) {
	m := testMesh(t)
	idx, ok := m.NearestInsideNode(lin.V3{X: 0.5, Y: 0.5, Z: 0.5})
	if !ok {
		t.Fatal("expected the cube's centre to resolve to an inside node")
	}
	exact := m.nodes[idx].Position
	d, err := NewDriver(m, exact, lin.V3{X: 0.6, Y: 0.6, Z: 0.6})
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	if off := d.CorrectionOffset(); off != 0 {
		t.Errorf("CorrectionOffset for an exact lattice position = %d, want 0", off)
	}
}
