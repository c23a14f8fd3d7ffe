// Copyright 2025 The FastEMRIWaveforms Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for waveform assembly.
//
// Mode gathers run as WGSL compute kernels. WGSL has no 64-bit floats, so
// reductions and scaling stay on the host and results match the CPU backend
// bit for bit. Native bindings are wired on windows; on other platforms New
// returns an error and IsAvailable reports false.
//
// Example:
//
//	import (
//	    "github.com/KwintenF/FastEMRIWaveforms/backend/webgpu"
//	    "github.com/KwintenF/FastEMRIWaveforms/waveform"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    model, err := waveform.New(waveform.Options{Backend: gpu})
//	}
package webgpu

import (
	internalwebgpu "github.com/KwintenF/FastEMRIWaveforms/internal/backend/webgpu"
)

// Backend represents the WebGPU array engine.
type Backend = internalwebgpu.Engine

// New creates a new WebGPU backend.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
// Call Release() when done to free GPU resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	var backend waveform.Backend = cpu.New()
//	if webgpu.IsAvailable() {
//	    if gpu, err := webgpu.New(); err == nil {
//	        backend = gpu
//	    }
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
