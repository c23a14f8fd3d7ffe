// Copyright 2025 The FastEMRIWaveforms Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for waveform assembly.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - SIMD power reductions via algo-vecmath
//   - Row-parallel normalization and scaling
//   - Index gathers for mode selection
//
// # Basic Usage
//
//	import (
//	    "github.com/KwintenF/FastEMRIWaveforms/backend/cpu"
//	    "github.com/KwintenF/FastEMRIWaveforms/waveform"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    fmt.Println(backend.Name()) // CPU (amd64, avx2+sse2)
//	}
//
// # Thread Safety
//
// The CPU backend holds no mutable state and may be shared by concurrent
// waveform calls.
package cpu
