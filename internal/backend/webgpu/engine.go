//go:build windows

// Package webgpu implements the WebGPU array engine.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/backend/cpu"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Compile-time check that Engine implements array.Backend.
var _ array.Backend = (*Engine)(nil)

// Engine implements array operations on a GPU through WebGPU.
//
// Index gathers run as WGSL kernels over the raw 32-bit words of complex128
// data, so they are bit-exact. WGSL has no f64 type; floating-point
// reductions and scaling run on the host so results match the CPU engine.
type Engine struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	pool *bufferPool
	host *cpu.Engine
}

// New creates a new WebGPU engine.
// Returns an error if WebGPU is not available or initialization fails.
func New() (engine *Engine, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			engine = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Engine{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		pool:      newBufferPool(device),
		host:      cpu.NewWithConfig(parallel.DefaultConfig()),
	}, nil
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (e *Engine) Device() array.Device {
	return array.WebGPU
}

// Release releases all WebGPU resources.
// Must be called when the engine is no longer needed.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pool != nil {
		e.pool.clear()
	}

	for _, p := range e.pipelines {
		p.Release()
	}
	e.pipelines = nil

	for _, s := range e.shaders {
		s.Release()
	}
	e.shaders = nil

	if e.queue != nil {
		e.queue.Release()
		e.queue = nil
	}
	if e.device != nil {
		e.device.Release()
		e.device = nil
	}
	if e.adapter != nil {
		e.adapter.Release()
		e.adapter = nil
	}
	if e.instance != nil {
		e.instance.Release()
		e.instance = nil
	}
}

// Stage copies x for device use. Float series are consumed by host-side
// reductions, so no device buffer is created here.
func (e *Engine) Stage(x []float64) []float64 {
	return e.host.Stage(x)
}

// WeightedRowNorm runs on the host path (f64 arithmetic).
func (e *Engine) WeightedRowNorm(a *array.Matrix, w []float64) []float64 {
	return e.host.WeightedRowNorm(a, w)
}

// ScaleRows runs on the host path (f64 arithmetic).
func (e *Engine) ScaleRows(a *array.Matrix, f []float64) *array.Matrix {
	return e.host.ScaleRows(a, f)
}

// TakeColumns gathers the columns idx of a on the GPU.
func (e *Engine) TakeColumns(a *array.Matrix, idx []int) *array.Matrix {
	out := array.NewMatrix(a.Rows, len(idx))
	if a.Rows == 0 || len(idx) == 0 {
		return out
	}
	if err := e.gather(out.Data, a.Data, a.Rows, a.Cols, idx); err != nil {
		panic(fmt.Sprintf("take columns: %v", err))
	}
	return out
}

// Take gathers v[idx[k]] on the GPU.
func (e *Engine) Take(v []complex128, idx []int) []complex128 {
	out := make([]complex128, len(idx))
	if len(idx) == 0 {
		return out
	}
	if err := e.gather(out, v, 1, len(v), idx); err != nil {
		panic(fmt.Sprintf("take: %v", err))
	}
	return out
}

// Concat joins parts in order. Segments are already host resident after
// summation, so this is a plain copy.
func (e *Engine) Concat(parts ...[]complex128) []complex128 {
	return e.host.Concat(parts...)
}
