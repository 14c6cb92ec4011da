// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// engine.go orchestrates one full simulation run (spec.md §4.6): validate
// placements, trace, mesh, and leave the attenuator-dependent mixdown to
// Intermediate.Postprocess. Run's (nil, nil) "absence of a result" return on
// cancellation matches the contract already used by raytracer.Trace, so a
// cancelled run is never mistaken for a zero-impulse result.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/wayverb/core/raytracer"
	"github.com/wayverb/core/waveguide"
)

// Engine runs one hybrid acoustic simulation to completion.
type Engine struct {
	cfg Config

	mu    sync.Mutex
	state State
	times map[State]time.Duration
}

// NewEngine returns an Engine ready to Run cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, times: make(map[State]time.Duration)}
}

// Times returns how long the most recent Run spent in each state, for
// diagnostics (the teacher's eng.go Profile()/Times() style).
func (e *Engine) Times() map[State]time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[State]time.Duration, len(e.times))
	for k, v := range e.times {
		out[k] = v
	}
	return out
}

func (e *Engine) timed(s State, fn func() error) error {
	e.transition(s)
	start := time.Now()
	err := fn()
	e.mu.Lock()
	e.times[s] += time.Since(start)
	e.mu.Unlock()
	return err
}

// Run executes one full simulation: placement validation, ray tracing, and
// waveguide meshing, returning an Intermediate ready for Postprocess. It
// returns (nil, nil) if cancel fires before completion, and leaves the
// engine back in Idle either way.
func (e *Engine) Run(cancel <-chan struct{}) (*Intermediate, error) {
	defer e.transition(Idle)

	if err := e.timed(Initialising, func() error {
		return validatePlacements(e.cfg.Grid, e.cfg.Source, e.cfg.Receiver)
	}); err != nil {
		return nil, err
	}

	var results *raytracer.Results
	if err := e.timed(RayTracing, func() error {
		dirs := raytracer.NewUniformSphere(e.cfg.Raytracer.Seed)
		r, err := raytracer.Trace(e.cfg.Context, e.cfg.Grid, e.cfg.Source, e.cfg.Receiver, e.cfg.Raytracer, e.cfg.Env, dirs, cancel)
		results = r
		return err
	}); err != nil {
		return nil, fmt.Errorf("engine: ray tracing: %w", err)
	}
	if results == nil {
		return nil, nil
	}

	var stream []float32
	meshFs := e.cfg.MeshSampleRate
	if err := e.timed(Waveguide, func() error {
		s, err := e.runWaveguide(results, cancel)
		stream = s
		return err
	}); err != nil {
		return nil, fmt.Errorf("engine: waveguide: %w", err)
	}
	if stream == nil {
		return nil, nil
	}

	var intermediate *Intermediate
	if err := e.timed(Postprocessing, func() error {
		resampled := make([]float32, len(stream))
		copy(resampled, stream)
		intermediate = &Intermediate{
			Results:         results,
			Env:             e.cfg.Env,
			WaveguideStream: resampled,
			WaveguideRate:   meshFs,
			CrossoverBand:   e.cfg.CrossoverBand,
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return intermediate, nil
}

// runWaveguide builds the mesh, injects a unit impulse at the source, and
// steps through the whole of results' time span, returning the receiver's
// raw pressure stream (before DC blocking or resampling). It returns
// (nil, nil) if cancel fires before completion.
func (e *Engine) runWaveguide(results *raytracer.Results, cancel <-chan struct{}) ([]float32, error) {
	mesh := waveguide.Build(e.cfg.Grid, e.cfg.Env, e.cfg.MeshSampleRate, e.cfg.Waveguide)
	driver, err := waveguide.NewDriver(mesh, e.cfg.Source, e.cfg.Receiver)
	if err != nil {
		return nil, err
	}

	steps := mesh.StepCount(results.MaxTime(e.cfg.Env))
	stream := make([]float32, steps)
	driver.Inject(1)
	for i := 0; i < steps; i++ {
		select {
		case <-cancel:
			return nil, nil
		default:
		}
		if err := mesh.Step(e.cfg.Context); err != nil {
			return nil, err
		}
		stream[i] = driver.Read()
	}

	offset := driver.CorrectionOffset()
	if offset > 0 && offset < len(stream) {
		stream = stream[offset:]
	}
	return stream, nil
}
