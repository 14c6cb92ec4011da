// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// driver.go wires a Mesh's source and receiver: soft-source injection (added
// to, not overwriting, the existing pressure so multiple excitations can
// overlap) and receiver read-out. Grounded on the original implementation's
// RunStepResult/get_index_for_coordinate pair in lib/waveguide.cpp: a driver
// snaps a requested position to the nearest mesh node once at construction
// and thereafter only ever touches that node index.

package waveguide

import "github.com/wayverb/core/math/lin"

// Driver binds a Mesh to one source node and one receiver node.
type Driver struct {
	mesh            *Mesh
	sourceIndex     int
	receiverIndex   int
	requestedSource lin.V3
}

// NewDriver snaps source and receiver to their nearest mesh nodes.
func NewDriver(mesh *Mesh, source, receiver lin.V3) (*Driver, error) {
	si, ok := mesh.NearestInsideNode(source)
	if !ok {
		return nil, ErrSourceOutsideMesh
	}
	ri, ok := mesh.NearestInsideNode(receiver)
	if !ok {
		return nil, ErrReceiverOutsideMesh
	}
	return &Driver{mesh: mesh, sourceIndex: si, receiverIndex: ri, requestedSource: source}, nil
}

// Inject adds one soft-source sample at the source node, to be picked up by
// the following Step call.
func (d *Driver) Inject(sample float32) {
	d.mesh.curr[d.sourceIndex] += sample
}

// Read returns the receiver node's current pressure sample.
func (d *Driver) Read() float32 {
	return d.mesh.curr[d.receiverIndex]
}

// SourcePosition returns the mesh node position the source was snapped to.
func (d *Driver) SourcePosition() lin.V3 { return d.mesh.nodes[d.sourceIndex].Position }

// ReceiverPosition returns the mesh node position the receiver was snapped
// to.
func (d *Driver) ReceiverPosition() lin.V3 { return d.mesh.nodes[d.receiverIndex].Position }

// CorrectionOffset returns the number of leading samples to trim from the
// driver's output stream before mixing it with the ray-traced impulse
// response. Snapping the requested source to its nearest inside lattice
// node moves it by some distance; this reports that distance divided by the
// node spacing, rounded to the nearest integer, and the engine trims that
// many leading samples from the waveguide stream (spec.md §4.4).
func (d *Driver) CorrectionOffset() int {
	actual := d.mesh.nodes[d.sourceIndex].Position
	dist := actual.Dist(&d.requestedSource)
	offset := dist / d.mesh.spacing
	rounded := int(offset + 0.5)
	return rounded
}
