// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geometry

import (
	"testing"

	"github.com/wayverb/core/math/lin"
)

func TestMirrorImageSourcesFirstOrder(t *testing.T) {
	box := Box{Min: lin.V3{X: 0, Y: 0, Z: 0}, Max: lin.V3{X: 4, Y: 3, Z: 2}}
	source := lin.V3{X: 1, Y: 1, Z: 1}

	images := box.MirrorImageSources(source, 1)
	if len(images) != 6 {
		t.Fatalf("expected 6 first-order images for a shoebox, got %d", len(images))
	}
	want := map[lin.V3]bool{
		{X: -1, Y: 1, Z: 1}: true, // reflect across x=0
		{X: 7, Y: 1, Z: 1}:  true, // reflect across x=4
		{X: 1, Y: -1, Z: 1}: true, // reflect across y=0
		{X: 1, Y: 5, Z: 1}:  true, // reflect across y=3
		{X: 1, Y: 1, Z: -1}: true, // reflect across z=0
		{X: 1, Y: 1, Z: 3}:  true, // reflect across z=2
	}
	for _, im := range images {
		if im.Order != 1 {
			t.Errorf("expected order 1, got %d for %v", im.Order, im.Position)
		}
		if !want[im.Position] {
			t.Errorf("unexpected image position %v", im.Position)
		}
		delete(want, im.Position)
	}
	if len(want) != 0 {
		t.Errorf("missing expected images: %v", want)
	}
}

func TestIntersectRay(t *testing.T) {
	box := Box{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	tMin, tMax, ok := box.IntersectRay(lin.V3{X: -5, Y: 0, Z: 0}, lin.V3{X: 1, Y: 0, Z: 0})
	if !ok {
		t.Fatal("expected hit")
	}
	if tMin != 4 || tMax != 6 {
		t.Errorf("got tMin=%v tMax=%v, want 4,6", tMin, tMax)
	}

	_, _, ok = box.IntersectRay(lin.V3{X: -5, Y: 5, Z: 0}, lin.V3{X: 1, Y: 0, Z: 0})
	if ok {
		t.Error("expected miss")
	}
}
