// Package cpu implements the CPU array engine with SIMD kernels from algo-vecmath.
package cpu

import (
	"fmt"
	"strings"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Compile-time check that Engine implements array.Backend.
var _ array.Backend = (*Engine)(nil)

// Engine implements array operations on the host CPU.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	device   array.Device
	par      parallel.Config
	features cpu.Features
}

// New creates a CPU engine with the default parallel configuration.
func New() *Engine {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU engine that splits row work according to cfg.
func NewWithConfig(cfg parallel.Config) *Engine {
	return &Engine{
		device:   array.CPU,
		par:      cfg,
		features: cpu.DetectFeatures(),
	}
}

// Name returns the engine name with the SIMD extensions in use.
func (e *Engine) Name() string {
	var ext []string
	if e.features.HasAVX2 {
		ext = append(ext, "avx2")
	}
	if e.features.HasSSE2 {
		ext = append(ext, "sse2")
	}
	if len(ext) == 0 {
		return fmt.Sprintf("CPU (%s, generic)", e.features.Architecture)
	}
	return fmt.Sprintf("CPU (%s, %s)", e.features.Architecture, strings.Join(ext, "+"))
}

// Device returns the compute device.
func (e *Engine) Device() array.Device {
	return e.device
}

// Release is a no-op; host memory is garbage collected.
func (e *Engine) Release() {}

// Stage copies x into a fresh host slice.
func (e *Engine) Stage(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
