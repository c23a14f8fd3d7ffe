//go:build windows

package webgpu

import (
	"testing"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/stretchr/testify/assert"
)

func TestClassSize(t *testing.T) {
	assert.Equal(t, uint64(256), classSize(1))
	assert.Equal(t, uint64(256), classSize(256))
	assert.Equal(t, uint64(512), classSize(257))
	assert.Equal(t, uint64(1<<20), classSize(1<<20))
}

func TestBufferPool_ReusedAcrossGathers(t *testing.T) {
	e := newOrSkip(t)

	a := array.NewMatrix(64, 8)
	for i := range a.Data {
		a.Data[i] = complex(float64(i), -float64(i))
	}
	for range 3 {
		e.TakeColumns(a, []int{1, 5, 7})
	}

	hits, misses := e.pool.stats()
	// Output and staging buffers are created once, then reused.
	assert.Equal(t, uint64(2), misses)
	assert.Equal(t, uint64(4), hits)
}
