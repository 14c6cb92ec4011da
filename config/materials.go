// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/geometry"
)

// materialPreset is one named entry in a material library YAML document, for
// example:
//
//	brick:
//	  absorption: [0.03, 0.03, 0.03, 0.04, 0.05, 0.07, 0.08, 0.08]
//	  scattering: [0.1, 0.1, 0.1, 0.1, 0.2, 0.2, 0.3, 0.3]
type materialPreset struct {
	Absorption []float32 `yaml:"absorption"`
	Scattering []float32 `yaml:"scattering"`
}

// ParseMaterialLibrary unmarshals a named-material YAML document into
// geometry.Material values, keyed by name. Every preset's absorption and
// scattering lists must carry exactly bands.N entries.
func ParseMaterialLibrary(data []byte) (map[string]geometry.Material, error) {
	var presets map[string]materialPreset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("config: parse material library: %w", err)
	}
	out := make(map[string]geometry.Material, len(presets))
	for name, p := range presets {
		if len(p.Absorption) != bands.N {
			return nil, fmt.Errorf("config: material %q absorption has %d entries, want %d", name, len(p.Absorption), bands.N)
		}
		if len(p.Scattering) != bands.N {
			return nil, fmt.Errorf("config: material %q scattering has %d entries, want %d", name, len(p.Scattering), bands.N)
		}
		var mat geometry.Material
		copy(mat.Absorption[:], p.Absorption)
		copy(mat.Scattering[:], p.Scattering)
		if !mat.Validate() {
			return nil, fmt.Errorf("config: material %q fails validation", name)
		}
		out[name] = mat
	}
	return out, nil
}
