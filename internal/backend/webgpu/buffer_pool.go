//go:build windows

package webgpu

import (
	"math/bits"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooled bounds the idle buffers kept per size class.
const maxPooled = 8

// poolKey identifies a class of interchangeable buffers.
type poolKey struct {
	size  uint64 // power of two
	usage wgpu.BufferUsage
}

// bufferPool reuses the output and staging buffers of gather kernels across
// batches. Buffers are rounded up to a power of two so that spans of similar
// length share a class.
type bufferPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	idle map[poolKey][]*wgpu.Buffer

	hits   uint64
	misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{device: device, idle: make(map[poolKey][]*wgpu.Buffer)}
}

// classSize rounds size up to a power of two, minimum 256 bytes.
func classSize(size uint64) uint64 {
	if size <= 256 {
		return 256
	}
	return 1 << bits.Len64(size-1)
}

// acquire returns a buffer of at least size bytes with the given usage.
func (p *bufferPool) acquire(size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, poolKey) {
	key := poolKey{size: classSize(size), usage: usage}

	p.mu.Lock()
	if free := p.idle[key]; len(free) > 0 {
		buf := free[len(free)-1]
		p.idle[key] = free[:len(free)-1]
		p.hits++
		p.mu.Unlock()
		return buf, key
	}
	p.misses++
	p.mu.Unlock()

	buf := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  key.size,
	})
	return buf, key
}

// release returns buf to its class, or frees it when the class is full.
func (p *bufferPool) release(buf *wgpu.Buffer, key poolKey) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.idle == nil || len(p.idle[key]) >= maxPooled {
		buf.Release()
		return
	}
	p.idle[key] = append(p.idle[key], buf)
}

// clear frees every idle buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, free := range p.idle {
		for _, buf := range free {
			buf.Release()
		}
	}
	p.idle = nil
}

// stats reports pool hits and misses.
func (p *bufferPool) stats() (hits, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}
