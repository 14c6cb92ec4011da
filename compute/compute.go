// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package compute provides the opaque "compute context" collaborator
// described in spec.md §1/§9: device/GPU discovery is out of scope for the
// simulator core, which only needs a small capability set to compile and
// dispatch kernels and to allocate device-resident buffers. The interface
// split (public capability surface vs. package-private bind/dispatch
// internals) mirrors the teacher's render.Renderer / graphicsContext split
// in render/render.go, generalized from "draw a Model" to "run a kernel
// over N work-items".
package compute

import "fmt"

// Kernel is an opaque handle to a compiled unit of work, analogous to a
// render.Shader handle in the teacher engine.
type Kernel interface {
	Name() string
}

// Buffer is an opaque device-resident float32 array, analogous to a
// render.Mesh's bound vertex buffer.
type Buffer interface {
	Len() int
}

// KernelFunc is the body of one kernel dispatch, invoked once per work-item
// index in [0, workItems). Implementations must be safe to call
// concurrently from different goroutines with different indices.
type KernelFunc func(workItem int)

// Context is the capability set the simulator core needs from a compute
// device. Every method mirrors one line of spec.md §9's "GPU buffers as
// opaque handles" design note: CompileKernel/Dispatch replace a raw kernel
// launch, AllocBuffer/CopyH2D/CopyD2H replace raw device pointers.
type Context interface {
	// CompileKernel prepares fn for repeated dispatch under the given name
	// (used only for diagnostics/visualisation labelling).
	CompileKernel(name string, fn KernelFunc) (Kernel, error)

	// AllocBuffer reserves a device-resident float32 array of length n.
	AllocBuffer(n int) (Buffer, error)

	// CopyH2D uploads host data into a previously allocated buffer.
	CopyH2D(buf Buffer, data []float32) error

	// CopyD2H downloads a buffer's contents into a host-resident slice. out
	// must have length buf.Len().
	CopyD2H(buf Buffer, out []float32) error

	// Dispatch runs the kernel over workItems work-items and blocks until
	// every work-item has completed (spec.md §5: an explicit barrier
	// between steps).
	Dispatch(k Kernel, workItems int) error
}

// DeviceError wraps a kernel-compile or dispatch failure from the
// underlying compute device, per spec.md §6/§7's DeviceError(code) taxonomy
// entry.
type DeviceError struct {
	Code    int
	Message string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("compute: device error %d: %s", e.Code, e.Message)
}
