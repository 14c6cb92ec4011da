// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// raytracer.go implements the stochastic ray tracer (spec.md §4.2): rays are
// launched from the source over the unit sphere and bounced through the
// scene, splitting at each hit into a diffuse "rain" contribution (a shadow
// ray fired at the receiver, weighted by the surface's scattering
// coefficient) and a surviving specular ray that continues bouncing until it
// leaves the scene or is terminated by Russian roulette. Each reflection
// depth is dispatched as one compute.Context kernel run, one work-item per
// ray, grounded on the teacher's application update loop (app.go's
// goroutine-per-frame pattern generalized here to one goroutine batch per
// reflection depth) with cancellation polled between depth layers rather
// than mid-dispatch.
package raytracer

import (
	"errors"
	"math/rand"

	"github.com/wayverb/core/bands"
	"github.com/wayverb/core/compute"
	"github.com/wayverb/core/environment"
	"github.com/wayverb/core/geometry"
	"github.com/wayverb/core/internal/audio"
	"github.com/wayverb/core/math/lin"
)

// ErrNumericalInstability is returned when a traced ray's accumulated energy
// becomes NaN or infinite, the condition spec.md §7 names
// NumericalInstability.
var ErrNumericalInstability = errors.New("raytracer: numerical instability detected")

// rayState is one in-flight ray's mutable bookkeeping between bounces. Each
// ray owns its own rng so concurrent bounce kernels never share mutable
// state across work-items.
type rayState struct {
	origin   lin.V3
	dir      lin.V3
	energy   bands.Vector
	distance float64
	alive    bool
	rng      *rand.Rand
}

// Trace casts cfg.Rays stochastic rays from source and returns every impulse
// captured at receiver: the explicit direct-sound visibility test, the
// validated early-reflection search (EarlyReflections), and the diffuse-rain
// impulses captured at each of cfg.MaxDepth bounce depths. cancel is polled
// between depth layers; on cancellation Trace returns (nil, nil), matching
// the "absence of a result" contract used throughout the engine package.
func Trace(ctx compute.Context, grid *geometry.VoxelGrid, source, receiver lin.V3, cfg Config, env environment.Environment, dirs DirectionSource, cancel <-chan struct{}) (*Results, error) {
	results := &Results{}

	if grid.Visible(source, receiver) {
		listener := audio.NewListener(receiver, lin.V3{}, lin.V3{})
		var toSource lin.V3
		toSource.Sub(&source, &receiver)
		dist := toSource.Len()
		vol := env.AttenuateOverDistance(bands.Fill(1), dist)
		im := Impulse{Volume: vol, Direction: listener.RelativeDirection(source), Distance: dist}
		results.Direct = &im
	}

	results.ImageSource = EarlyReflections(grid, source, receiver, cfg, env)

	if cfg.Rays > 0 && cfg.MaxDepth > 0 {
		diffuse, err := traceDiffuseRain(ctx, grid, source, receiver, cfg, env, dirs, cancel)
		if err != nil {
			return nil, err
		}
		if diffuse == nil {
			return nil, nil
		}
		results.Diffuse = diffuse
	}

	if !results.Finite() {
		return nil, ErrNumericalInstability
	}
	return results, nil
}

// traceDiffuseRain runs the depth-by-depth bounce simulation. It returns
// (nil, nil) if cancel fires before completion.
func traceDiffuseRain(ctx compute.Context, grid *geometry.VoxelGrid, source, receiver lin.V3, cfg Config, env environment.Environment, dirs DirectionSource, cancel <-chan struct{}) ([][]Impulse, error) {
	states := make([]rayState, cfg.Rays)
	for i := range states {
		states[i] = rayState{
			origin: source,
			dir:    dirs.Next(),
			energy: bands.Fill(1),
			alive:  true,
			rng:    rand.New(rand.NewSource(cfg.Seed + int64(i)*2654435761)),
		}
	}

	diffuse := make([][]Impulse, cfg.MaxDepth)
	for depth := 0; depth < cfg.MaxDepth; depth++ {
		select {
		case <-cancel:
			return nil, nil
		default:
		}

		layer := make([]*Impulse, cfg.Rays)
		kernel, err := ctx.CompileKernel("raytracer.bounce", func(i int) {
			layer[i] = bounceRay(&states[i], grid, receiver, env, cfg)
		})
		if err != nil {
			return nil, err
		}
		if err := ctx.Dispatch(kernel, cfg.Rays); err != nil {
			return nil, err
		}

		var captured []Impulse
		for _, im := range layer {
			if im != nil {
				captured = append(captured, *im)
			}
		}
		diffuse[depth] = captured
	}
	return diffuse, nil
}

// bounceRay advances one ray by a single reflection. It returns the diffuse
// impulse captured at the receiver from this bounce's scattering lobe, or
// nil if the receiver was occluded, the ray is already dead, or it left the
// scene this bounce.
func bounceRay(state *rayState, grid *geometry.VoxelGrid, receiver lin.V3, env environment.Environment, cfg Config) *Impulse {
	if !state.alive {
		return nil
	}
	hit, ok := grid.Nearest(state.origin, state.dir)
	if !ok {
		state.alive = false
		return nil
	}

	scene := grid.Scene()
	tri := scene.Triangles[hit.Triangle]
	mat := scene.Materials[tri.Material]

	state.distance += hit.Distance
	arriving := env.AttenuateOverDistance(state.energy, hit.Distance)
	reflected := arriving.Mul(mat.Reflectance())
	diffusePortion := reflected.Mul(mat.Scattering)
	specularPortion := reflected.Sub(diffusePortion)

	var captured *Impulse
	if grid.Visible(hit.Point, receiver) {
		listener := audio.NewListener(receiver, lin.V3{}, lin.V3{})
		var toReceiver lin.V3
		toReceiver.Sub(&receiver, &hit.Point)
		legDistance := toReceiver.Len()
		toReceiver.Unit()
		lambert := hit.Normal.Dot(&toReceiver)
		if hit.Normal.Dot(&state.dir) > 0 {
			// The ray struck the face from behind its normal: take the
			// Lambert term on the side the ray arrived from.
			lambert = -lambert
		}
		if lambert < 0 {
			lambert = 0
		}
		vol := env.AttenuateOverDistance(diffusePortion.Scale(float32(lambert)), legDistance)
		captured = &Impulse{Volume: vol, Direction: listener.RelativeDirection(hit.Point), Distance: state.distance + legDistance}
	}

	state.energy = specularPortion
	if state.energy.Max() < cfg.EnergyThreshold {
		p := float64(state.energy.Max() / cfg.EnergyThreshold)
		if p <= 0 || state.rng.Float64() >= p {
			state.alive = false
			return captured
		}
		state.energy = state.energy.Scale(float32(1 / p))
	}

	var reflectedDir lin.V3
	reflectedDir.Reflect(&state.dir, &hit.Normal)
	state.origin = hit.Point
	state.dir = reflectedDir
	return captured
}
