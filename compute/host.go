// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package compute

import (
	"errors"
	"sync"
)

// hostKernel is the host backend's Kernel handle.
type hostKernel struct {
	name string
	fn   KernelFunc
}

func (k *hostKernel) Name() string { return k.name }

// hostBuffer is a plain host-memory float32 slice standing in for a device
// buffer; the host backend never actually leaves host memory, so CopyH2D
// and CopyD2H are plain slice copies.
type hostBuffer struct {
	data []float32
}

func (b *hostBuffer) Len() int { return len(b.data) }

// Host is a ComputeContext backend that dispatches kernels across a
// goroutine worker pool sized to the detected core count, rather than an
// actual GPU. It is grounded on the teacher's application update loop
// (app.go's application.update, handed between the update goroutine and the
// engine's main thread over a "done chan *application"): here, instead of
// one goroutine doing one frame of work and reporting back over a channel,
// a pool of workerCount goroutines each claim work-item indices from a
// shared counter and report completion over a WaitGroup.
type Host struct {
	workerCount int
}

// NewHost returns a Host backend sized to the machine's detected core
// count (see workers_other.go).
func NewHost() *Host {
	return &Host{workerCount: detectCoreCount()}
}

// NewHostWithWorkers returns a Host backend with an explicit worker count,
// primarily for deterministic tests.
func NewHostWithWorkers(workers int) *Host {
	if workers < 1 {
		workers = 1
	}
	return &Host{workerCount: workers}
}

func (h *Host) CompileKernel(name string, fn KernelFunc) (Kernel, error) {
	if fn == nil {
		return nil, errors.New("compute: nil kernel function")
	}
	return &hostKernel{name: name, fn: fn}, nil
}

func (h *Host) AllocBuffer(n int) (Buffer, error) {
	if n < 0 {
		return nil, errors.New("compute: negative buffer length")
	}
	return &hostBuffer{data: make([]float32, n)}, nil
}

func (h *Host) CopyH2D(buf Buffer, data []float32) error {
	hb, ok := buf.(*hostBuffer)
	if !ok {
		return errors.New("compute: buffer not allocated by this context")
	}
	n := copy(hb.data, data)
	if n != len(hb.data) || n != len(data) {
		return errors.New("compute: CopyH2D length mismatch")
	}
	return nil
}

func (h *Host) CopyD2H(buf Buffer, out []float32) error {
	hb, ok := buf.(*hostBuffer)
	if !ok {
		return errors.New("compute: buffer not allocated by this context")
	}
	n := copy(out, hb.data)
	if n != len(hb.data) || n != len(out) {
		return errors.New("compute: CopyD2H length mismatch")
	}
	return nil
}

// Dispatch divides workItems into contiguous slices, one per worker
// goroutine, and blocks until every worker has finished its slice. This is
// the "one kernel dispatch of |nodes| (or rays) work-items" barrier
// described in spec.md §5.
func (h *Host) Dispatch(k Kernel, workItems int) error {
	hk, ok := k.(*hostKernel)
	if !ok {
		return errors.New("compute: kernel not compiled by this context")
	}
	if workItems <= 0 {
		return nil
	}
	workers := h.workerCount
	if workers > workItems {
		workers = workItems
	}
	chunk := (workItems + workers - 1) / workers
	// Round each goroutine's slice up to a multiple of the host's SIMD lane
	// width so the inner loop in hk.fn processes whole lane groups.
	if lanes := simdWidthHint(); lanes > 1 && chunk > lanes {
		chunk = ((chunk + lanes - 1) / lanes) * lanes
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= workItems {
			break
		}
		if end > workItems {
			end = workItems
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				hk.fn(i)
			}
		}(start, end)
	}
	wg.Wait()
	return nil
}
