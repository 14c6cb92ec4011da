// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
package engine

import "errors"

// ErrSourceOutsideMesh is returned by the placement pre-check (placement.go)
// when the source position does not lie inside the scene's closed surface,
// before any mesh is built. waveguide.ErrSourceOutsideMesh is a distinct,
// later failure: the lattice-snap search in waveguide.NewDriver can still
// fail even for a point this pre-check accepts, and Run returns that error
// wrapped with %w (errors.Is still matches it) rather than hiding it behind
// this one.
var ErrSourceOutsideMesh = errors.New("engine: source position outside mesh")

// ErrReceiverOutsideMesh is the receiver-position counterpart of
// ErrSourceOutsideMesh.
var ErrReceiverOutsideMesh = errors.New("engine: receiver position outside mesh")

// ErrSourceOnSurface and ErrReceiverOnSurface are returned when a placement
// lies within the surface clearance tolerance of a triangle, per
// src/combined/src/model/source.cpp's placement guard.
var (
	ErrSourceOnSurface   = errors.New("engine: source position coincides with a surface")
	ErrReceiverOnSurface = errors.New("engine: receiver position coincides with a surface")
)
