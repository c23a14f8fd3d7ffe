//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached per engine.
func (e *Engine) compileShader(name, code string) *wgpu.ShaderModule {
	e.mu.RLock()
	if shader, exists := e.shaders[name]; exists {
		e.mu.RUnlock()
		return shader
	}
	e.mu.RUnlock()

	shader := e.device.CreateShaderModuleWGSL(code)

	e.mu.Lock()
	e.shaders[name] = shader
	e.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (e *Engine) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	e.mu.RLock()
	if pipeline, exists := e.pipelines[name]; exists {
		e.mu.RUnlock()
		return pipeline
	}
	e.mu.RUnlock()

	pipeline := e.device.CreateComputePipelineSimple(nil, shader, "main")

	e.mu.Lock()
	e.pipelines[name] = pipeline
	e.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer initialized with data.
func (e *Engine) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer rounded up to 16 bytes.
func (e *Engine) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	padded := make([]byte, alignedSize)
	copy(padded, data)
	return e.createBuffer(padded, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

// readBuffer reads data back from a GPU buffer through a staging buffer.
func (e *Engine) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging, key := e.pool.acquire(size, wgpu.BufferUsageMapRead|wgpu.BufferUsageCopyDst)
	defer e.pool.release(staging, key)

	encoder := e.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	e.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(e.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}

// complexBytes views complex128 data as raw bytes.
func complexBytes(c []complex128) []byte {
	//nolint:gosec // unsafe.Slice for zero-copy view, complex128 is 16 bytes
	return unsafe.Slice((*byte)(unsafe.Pointer(&c[0])), 16*len(c))
}

// gather runs gatherShader: dst[r*len(idx)+k] = src[r*cols+idx[k]].
func (e *Engine) gather(dst, src []complex128, rows, cols int, idx []int) error {
	if len(src) == 0 {
		return fmt.Errorf("webgpu: gather from empty source")
	}

	idxBytes := make([]byte, 4*len(idx))
	for k, j := range idx {
		if j < 0 || j >= cols {
			return fmt.Errorf("webgpu: index %d out of range [0, %d)", j, cols)
		}
		//nolint:gosec // G115: bounds checked above
		binary.LittleEndian.PutUint32(idxBytes[4*k:], uint32(j))
	}

	shader := e.compileShader("gather", gatherShader)
	pipeline := e.getOrCreatePipeline("gather", shader)

	srcBuffer := e.createBuffer(complexBytes(src), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer srcBuffer.Release()

	idxBuffer := e.createBuffer(idxBytes, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer idxBuffer.Release()

	//nolint:gosec // G115: Safe conversion, length is non-negative
	dstSize := uint64(16 * len(dst))
	dstBuffer, dstKey := e.pool.acquire(dstSize, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer e.pool.release(dstBuffer, dstKey)

	params := make([]byte, 16)
	//nolint:gosec // G115: shapes are non-negative
	binary.LittleEndian.PutUint32(params[0:4], uint32(rows))
	//nolint:gosec // G115: shapes are non-negative
	binary.LittleEndian.PutUint32(params[4:8], uint32(cols))
	//nolint:gosec // G115: shapes are non-negative
	binary.LittleEndian.PutUint32(params[8:12], uint32(len(idx)))
	paramsBuffer := e.createUniformBuffer(params)
	defer paramsBuffer.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := e.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		//nolint:gosec // G115: Safe conversion, length is non-negative
		wgpu.BufferBindingEntry(0, srcBuffer, 0, uint64(16*len(src))),
		//nolint:gosec // G115: Safe conversion, length is non-negative
		wgpu.BufferBindingEntry(1, idxBuffer, 0, uint64(len(idxBytes))),
		wgpu.BufferBindingEntry(2, dstBuffer, 0, dstSize),
		wgpu.BufferBindingEntry(3, paramsBuffer, 0, 16),
	})
	defer bindGroup.Release()

	encoder := e.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	total := rows * len(idx)
	//nolint:gosec // G115: capped at maxWorkgroups
	workgroups := uint32(min((total+workgroupSize-1)/workgroupSize, maxWorkgroups))
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	e.queue.Submit(cmdBuffer)

	out, err := e.readBuffer(dstBuffer, dstSize)
	if err != nil {
		return err
	}
	copy(complexBytes(dst), out)
	return nil
}
