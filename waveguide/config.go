// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package waveguide

import (
	"math"

	"github.com/wayverb/core/bands"
)

// Config carries the waveguide mesh's tunable parameters, following the
// original implementation's waveguide_config.{h,cpp} in naming spirit
// (filter_frequency/oversample_ratio there become CourantNumber/
// BoundaryDepth here, the two knobs this Go port actually needs).
type Config struct {
	// CourantNumber sets the rectilinear mesh's node spacing via
	// h = SpeedOfSound * CourantNumber / fs. sqrt(3) is the 3D rectilinear
	// Courant limit that the fixed update rule in stepNode assumes; other
	// values change the node spacing, and with it the simulated wave speed
	// (SpeedOfSound * CourantNumber / sqrt(3)), not the update rule.
	CourantNumber float64
	// BoundaryDepth is the number of history taps each node's locally
	// reactive boundary filter keeps (see Memory).
	BoundaryDepth int
	// AirAttenuation is carried with the configuration only: Build does not
	// read it, and the boundary filters are derived from material
	// reflectance alone, so the mesh applies no air loss.
	AirAttenuation bands.Vector
}

// DefaultConfig returns the stability-limit node spacing and a short
// boundary filter history.
func DefaultConfig() Config {
	return Config{
		CourantNumber: math.Sqrt(3),
		BoundaryDepth: 4,
	}
}
