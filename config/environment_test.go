// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config

import (
	"testing"

	"github.com/wayverb/core/environment"
)

func TestParseEnvironmentOverrideAppliesOnlySetFields(t *testing.T) {
	doc := []byte("speed_of_sound: 343\n")
	o, err := ParseEnvironmentOverride(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := o.Apply(environment.Default())
	if got.SpeedOfSound != 343 {
		t.Errorf("SpeedOfSound = %v, want 343", got.SpeedOfSound)
	}
	if got.AcousticImpedance != environment.Default().AcousticImpedance {
		t.Errorf("AcousticImpedance changed unexpectedly: %v", got.AcousticImpedance)
	}
}

func TestParseEnvironmentOverrideRejectsWrongBandCount(t *testing.T) {
	doc := []byte("air_attenuation: [0.1, 0.2]\n")
	if _, err := ParseEnvironmentOverride(doc); err == nil {
		t.Fatal("expected an error for a short air_attenuation list")
	}
}

func TestParseEnvironmentOverrideEmptyDocLeavesDefaultsUntouched(t *testing.T) {
	o, err := ParseEnvironmentOverride(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := environment.Default()
	got := o.Apply(base)
	if got != base {
		t.Errorf("got %+v, want unchanged default %+v", got, base)
	}
}
