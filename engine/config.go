// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// config.go carries one run's full parameter set. It follows the teacher's
// functional-options Attr/Config pattern (vu.Title(...), vu.Size(...) in
// config.go) generalized to engine construction: NewConfig takes the
// required geometry/compute collaborators positionally, then applies any
// number of Attr options over sensible defaults.
package engine

import (
	"github.com/wayverb/core/compute"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/math/lin"
	"github.com/wayverb/core/raytracer"
	"github.com/wayverb/core/waveguide"
)

// Config is a single simulation run's full parameter set.
type Config struct {
	Context  compute.Context
	Grid     *geometry.VoxelGrid
	Source   lin.V3
	Receiver lin.V3
	Env      environment.Environment

	Raytracer raytracer.Config
	Waveguide waveguide.Config

	// MeshSampleRate is the FDTD update rate passed to waveguide.Build.
	MeshSampleRate float64
	// OutputSampleRate is carried with the configuration only; Run does not
	// read it. The Intermediate keeps the raw waveguide stream at
	// MeshSampleRate, and every Intermediate.Postprocess call resamples it
	// to the fsOut it is given.
	OutputSampleRate float64
	// CrossoverBand is the first frequency band (0-indexed, see
	// postprocess.CombineStreams) supplied by the ray tracer alone; bands
	// below it are the waveguide's to cover.
	CrossoverBand int
}

// Attr configures a Config in place.
type Attr func(*Config)

// SpeedOfSound overrides Env.SpeedOfSound.
func SpeedOfSound(v float64) Attr { return func(c *Config) { c.Env.SpeedOfSound = v } }

// RayCount overrides Raytracer.Rays.
func RayCount(n int) Attr { return func(c *Config) { c.Raytracer.Rays = n } }

// MaxImageSourceOrder overrides Raytracer.MaxImageSourceOrder.
func MaxImageSourceOrder(n int) Attr { return func(c *Config) { c.Raytracer.MaxImageSourceOrder = n } }

// MaxDepth overrides Raytracer.MaxDepth.
func MaxDepth(n int) Attr { return func(c *Config) { c.Raytracer.MaxDepth = n } }

// Seed overrides Raytracer.Seed.
func Seed(seed int64) Attr { return func(c *Config) { c.Raytracer.Seed = seed } }

// CourantNumber overrides Waveguide.CourantNumber.
func CourantNumber(v float64) Attr { return func(c *Config) { c.Waveguide.CourantNumber = v } }

// MeshRate overrides MeshSampleRate.
func MeshRate(fs float64) Attr { return func(c *Config) { c.MeshSampleRate = fs } }

// OutputRate overrides OutputSampleRate.
func OutputRate(fs float64) Attr { return func(c *Config) { c.OutputSampleRate = fs } }

// CrossoverAt overrides CrossoverBand.
func CrossoverAt(band int) Attr { return func(c *Config) { c.CrossoverBand = band } }

// NewConfig builds a Config from its required collaborators and any number
// of Attr overrides applied over DefaultConfig-equivalent values.
func NewConfig(ctx compute.Context, grid *geometry.VoxelGrid, source, receiver lin.V3, attrs ...Attr) Config {
	c := Config{
		Context:          ctx,
		Grid:             grid,
		Source:           source,
		Receiver:         receiver,
		Env:              environment.Default(),
		Raytracer:        raytracer.DefaultConfig(),
		Waveguide:        waveguide.DefaultConfig(),
		MeshSampleRate:   8000,
		OutputSampleRate: 44100,
		CrossoverBand:    4,
	}
	for _, a := range attrs {
		a(&c)
	}
	return c
}
