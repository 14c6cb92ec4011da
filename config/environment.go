// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// Package config loads YAML scenario overrides the way the teacher's
// load package reads shader descriptions (load/shd.go's
// yaml.Unmarshal into a plain tagged struct): a preset file supplies
// only the fields a scenario wants to change, layered on top of
// environment.Default() and the caller's material library.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/environment"
)

// EnvironmentOverride is the YAML shape of a scenario's environment
// overrides. A nil pointer field leaves the corresponding
// environment.Environment field at its existing value; AirAttenuation, if
// present, must have exactly bands.N entries.
type EnvironmentOverride struct {
	SpeedOfSound      *float64  `yaml:"speed_of_sound"`
	AcousticImpedance *float64  `yaml:"acoustic_impedance"`
	AirAttenuation    []float32 `yaml:"air_attenuation"`
}

// ParseEnvironmentOverride unmarshals a YAML document in EnvironmentOverride
// shape.
func ParseEnvironmentOverride(data []byte) (EnvironmentOverride, error) {
	var o EnvironmentOverride
	if err := yaml.Unmarshal(data, &o); err != nil {
		return EnvironmentOverride{}, fmt.Errorf("config: parse environment override: %w", err)
	}
	if o.AirAttenuation != nil && len(o.AirAttenuation) != bands.N {
		return EnvironmentOverride{}, fmt.Errorf("config: air_attenuation has %d entries, want %d", len(o.AirAttenuation), bands.N)
	}
	return o, nil
}

// Apply layers o over base, leaving any field o doesn't set untouched.
func (o EnvironmentOverride) Apply(base environment.Environment) environment.Environment {
	out := base
	if o.SpeedOfSound != nil {
		out.SpeedOfSound = *o.SpeedOfSound
	}
	if o.AcousticImpedance != nil {
		out.AcousticImpedance = *o.AcousticImpedance
	}
	if o.AirAttenuation != nil {
		var v bands.Vector
		copy(v[:], o.AirAttenuation)
		out.AirAttenuation = v
	}
	return out
}
