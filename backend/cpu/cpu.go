// Copyright 2025 The FastEMRIWaveforms Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	internalcpu "github.com/KwintenF/FastEMRIWaveforms/internal/backend/cpu"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
)

// Backend represents the CPU array engine.
//
// The CPU engine runs every waveform array operation in pure Go, with
// algo-vecmath SIMD kernels where the host supports them.
type Backend = internalcpu.Engine

// ParallelConfig controls how row loops are split across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements array.Backend.
var _ array.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/KwintenF/FastEMRIWaveforms/backend/cpu"
//	    "github.com/KwintenF/FastEMRIWaveforms/waveform"
//	)
//
//	func main() {
//	    model, err := waveform.New(waveform.Options{Backend: cpu.New()})
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
