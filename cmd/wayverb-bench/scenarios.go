// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"time"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/compute"
	"github.com/wayverb/core/engine"
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/internal/audio"
	"github.com/wayverb/core/math/lin"
	"github.com/wayverb/core/postprocess"
)

// scenario combines a bench case with its description, mirroring the
// teacher eg package's tag/description/function table (eg/eg.go).
type scenario struct {
	tag         string
	description string
	function    func() (*report, error)
}

// report is one scenario's printable results.
type report struct {
	peakSample   int
	peakSeconds  float64
	combSeconds  []float64
	rt60Analytic float64
	rt60Measured float64
	times        map[engine.State]float64
}

func boxScene(dims lin.V3, mat geometry.Material) *geometry.Scene {
	x, y, z := dims.X, dims.Y, dims.Z
	verts := []lin.V3{
		{X: 0, Y: 0, Z: 0}, {X: x, Y: 0, Z: 0}, {X: x, Y: y, Z: 0}, {X: 0, Y: y, Z: 0},
		{X: 0, Y: 0, Z: z}, {X: x, Y: 0, Z: z}, {X: x, Y: y, Z: z}, {X: 0, Y: y, Z: z},
	}
	faces := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // bottom
		{4, 6, 5}, {4, 7, 6}, // top
		{0, 5, 1}, {0, 4, 5}, // front
		{3, 2, 6}, {3, 6, 7}, // back
		{0, 3, 7}, {0, 7, 4}, // left
		{1, 5, 6}, {1, 6, 2}, // right
	}
	tris := make([]geometry.Triangle, len(faces))
	for i, f := range faces {
		tris[i] = geometry.Triangle{A: uint32(f[0]), B: uint32(f[1]), C: uint32(f[2])}
	}
	return &geometry.Scene{Vertices: verts, Triangles: tris, Materials: []geometry.Material{mat}}
}

// schroederDecayDB is the same backward-integration decay estimator the
// engine package's scenario tests use, duplicated here since it has no
// exported home: a bench harness and a test suite measure the same
// quantity for different purposes and shouldn't share an internal helper
// across package boundaries.
func schroederDecayDB(ir []float32) []float64 {
	n := len(ir)
	energy := make([]float64, n)
	var cumulative float64
	for i := n - 1; i >= 0; i-- {
		v := float64(ir[i])
		cumulative += v * v
		energy[i] = cumulative
	}
	ref := energy[0]
	db := make([]float64, n)
	for i, e := range energy {
		if e <= 0 || ref <= 0 {
			db[i] = math.Inf(-1)
			continue
		}
		db[i] = 10 * math.Log10(e/ref)
	}
	return db
}

func crossingTime(db []float64, target, fs float64) (float64, bool) {
	for i := 1; i < len(db); i++ {
		if db[i-1] >= target && db[i] < target {
			frac := (db[i-1] - target) / (db[i-1] - db[i])
			return (float64(i-1) + frac) / fs, true
		}
	}
	return 0, false
}

func rt60FromDecay(db []float64, fs float64) (float64, bool) {
	t5, ok5 := crossingTime(db, -5, fs)
	t35, ok35 := crossingTime(db, -35, fs)
	if !ok5 || !ok35 || t35 <= t5 {
		return 0, false
	}
	slopePerSecond := -30 / (t35 - t5)
	return 60 / slopePerSecond, true
}

func runS1() (*report, error) {
	scene := &geometry.Scene{
		Vertices:  []lin.V3{{X: -1000, Y: -1000, Z: -1000}, {X: 1000, Y: -1000, Z: -1000}, {X: 0, Y: 1000, Z: -1000}},
		Triangles: []geometry.Triangle{{A: 0, B: 1, C: 2}},
		Materials: []geometry.Material{{}},
	}
	grid := geometry.Build(scene, 4, 10)
	source := lin.V3{X: 0, Y: 0, Z: 0}
	receiver := lin.V3{X: 3, Y: 0, Z: 0}

	cfg := engine.NewConfig(compute.NewHostWithWorkers(1), grid, source, receiver,
		engine.RayCount(0), engine.MaxImageSourceOrder(2), engine.MaxDepth(0))
	e := engine.NewEngine(cfg)
	result, err := e.Run(nil)
	if err != nil {
		return nil, err
	}

	const fsOut = 44100.0
	ir := postprocess.RaytracedIR(result.Results, cfg.Env, postprocess.NewNullAttenuator(), fsOut, 1000)
	peakSample, peakValue := -1, float32(0)
	for i := 0; i < len(ir[0]); i++ {
		var total float32
		for b := range ir {
			total += ir[b][i]
		}
		if total > peakValue {
			peakValue = total
			peakSample = i
		}
	}
	return &report{
		peakSample:  peakSample,
		peakSeconds: float64(peakSample) / fsOut,
		times:       durationsToSeconds(e.Times()),
	}, nil
}

// runS2 is spec.md §8's S2: a 1D corridor whose fully reflective end walls
// produce a comb of arrivals spaced evenly in distance.
func runS2() (*report, error) {
	dims := lin.V3{X: 4, Y: 0.1, Z: 0.1}
	mat := geometry.Material{}
	scene := boxScene(dims, mat)
	grid := geometry.Build(scene, 8, 0.02)

	source := lin.V3{X: 0.5, Y: 0.05, Z: 0.05}
	receiver := lin.V3{X: 3.5, Y: 0.05, Z: 0.05}

	cfg := engine.NewConfig(compute.NewHostWithWorkers(2), grid, source, receiver,
		engine.RayCount(2000), engine.MaxDepth(20), engine.MaxImageSourceOrder(8))
	e := engine.NewEngine(cfg)
	result, err := e.Run(nil)
	if err != nil {
		return nil, err
	}

	const fsOut = 44100.0
	ir := postprocess.RaytracedIR(result.Results, cfg.Env, postprocess.NewNullAttenuator(), fsOut, 4000)
	var combSeconds []float64
	const threshold = 1e-4
	for i := 1; i < len(ir[0])-1; i++ {
		var prev, cur, next float32
		for b := range ir {
			prev += ir[b][i-1]
			cur += ir[b][i]
			next += ir[b][i+1]
		}
		if cur > threshold && cur >= prev && cur >= next {
			combSeconds = append(combSeconds, float64(i)/fsOut)
		}
	}
	return &report{
		combSeconds: combSeconds,
		times:       durationsToSeconds(e.Times()),
	}, nil
}

func runS3() (*report, error) {
	const alpha = 0.05
	dims := lin.V3{X: 5.56, Y: 3.97, Z: 2.81}
	mat := geometry.Material{Absorption: bands.Fill(alpha), Scattering: bands.Fill(0.1)}
	scene := boxScene(dims, mat)
	grid := geometry.Build(scene, 16, 0.2)

	source := lin.V3{X: 2.09, Y: 2.12, Z: 2.12}
	receiver := lin.V3{X: 2.09, Y: 3.08, Z: 0.96}

	cfg := engine.NewConfig(compute.NewHostWithWorkers(4), grid, source, receiver,
		engine.RayCount(4000), engine.MaxDepth(40), engine.MaxImageSourceOrder(6),
		engine.MeshRate(4000), engine.OutputRate(16000), engine.CrossoverAt(4))
	e := engine.NewEngine(cfg)
	result, err := e.Run(nil)
	if err != nil {
		return nil, err
	}

	out := result.Postprocess(postprocess.NewNullAttenuator(), 16000)
	masterGain := audio.ClampGain(1)
	mix := make([]float32, len(out[0]))
	for i, v := range out[0] {
		mix[i] = v * float32(masterGain)
	}

	db := schroederDecayDB(mix)
	measured, ok := rt60FromDecay(db, 16000)
	if !ok {
		return nil, fmt.Errorf("could not estimate RT60 from the simulated decay")
	}

	volume := dims.X * dims.Y * dims.Z
	surface := 2 * (dims.X*dims.Y + dims.Y*dims.Z + dims.X*dims.Z)
	analytic := 0.161 * volume / (-surface * math.Log(1-alpha))

	return &report{
		rt60Analytic: analytic,
		rt60Measured: measured,
		times:        durationsToSeconds(e.Times()),
	}, nil
}

func durationsToSeconds(times map[engine.State]time.Duration) map[engine.State]float64 {
	out := make(map[engine.State]float64, len(times))
	for s, d := range times {
		out[s] = d.Seconds()
	}
	return out
}
