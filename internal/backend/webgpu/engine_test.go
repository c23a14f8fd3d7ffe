package webgpu

import (
	"math/rand/v2"
	"testing"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrSkip(t *testing.T) *Engine {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available on this system")
	}
	e, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(e.Release)
	return e
}

func TestNew_UnavailableReportsError(t *testing.T) {
	if IsAvailable() {
		t.Skip("WebGPU is available")
	}
	e, err := New()
	assert.Error(t, err)
	assert.Nil(t, e)
}

func TestEngine_MatchesMock(t *testing.T) {
	e := newOrSkip(t)
	assert.Equal(t, array.WebGPU, e.Device())

	r := rand.New(rand.NewPCG(7, 8))
	a := array.NewMatrix(300, 17)
	for i := range a.Data {
		a.Data[i] = complex(r.NormFloat64(), r.NormFloat64())
	}
	mock := array.NewMockBackend()

	idx := []int{16, 0, 3, 3, 9}
	got := e.TakeColumns(a, idx)
	require.Equal(t, a.Rows, got.Rows)
	assert.Equal(t, mock.TakeColumns(a, idx).Data, got.Data, "gathers are bit-exact")

	v := a.Row(5)
	assert.Equal(t, mock.Take(v, idx), e.Take(v, idx))

	w := make([]float64, a.Cols)
	for j := range w {
		w[j] = 2
	}
	assert.InDeltaSlice(t, mock.WeightedRowNorm(a, w), e.WeightedRowNorm(a, w), 1e-12)
}
