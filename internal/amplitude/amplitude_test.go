package amplitude

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarmonic_Shape(t *testing.T) {
	h := NewHarmonic()
	p := []float64{10, 9, 8}
	e := []float64{0.5, 0.4, 0.3}
	l := []int{2, 2, 3}
	m := []int{2, 1, 3}
	n := []int{0, -1, 2}

	amps, err := h.Generate(p, e, l, m, n)
	require.NoError(t, err)
	assert.Equal(t, 3, amps.Rows)
	assert.Equal(t, 3, amps.Cols)
	require.NoError(t, amps.Validate())
}

func TestHarmonic_CircularKeepsFundamental(t *testing.T) {
	amps, err := NewHarmonic().Generate([]float64{10}, []float64{0},
		[]int{2, 2, 2, 2}, []int{2, 2, 1, 0}, []int{0, 1, 0, 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.1, real(amps.At(0, 0)), 1e-15)
	assert.Zero(t, amps.At(0, 1))
	// (2,1,0) is a current multipole: suppressed and rotated.
	assert.InDelta(t, 0.1/math.Sqrt(10), cmplx.Abs(amps.At(0, 2)), 1e-15)
	assert.InDelta(t, -math.Pi/2, cmplx.Phase(amps.At(0, 2)), 1e-15)
	assert.Zero(t, amps.At(0, 3))
}

func TestHarmonic_DominantMode(t *testing.T) {
	amps, err := NewHarmonic().Generate([]float64{12}, []float64{0.2},
		[]int{2, 3, 4}, []int{2, 3, 4}, []int{0, 0, 0})
	require.NoError(t, err)

	a22 := cmplx.Abs(amps.At(0, 0))
	assert.Greater(t, a22, cmplx.Abs(amps.At(0, 1)))
	assert.Greater(t, cmplx.Abs(amps.At(0, 1)), cmplx.Abs(amps.At(0, 2)))
}

func TestHarmonic_ParallelMatchesSequential(t *testing.T) {
	p := make([]float64, 600)
	e := make([]float64, 600)
	for i := range p {
		p[i] = 12 - 4*float64(i)/600
		e[i] = 0.6 * float64(600-i) / 600
	}
	l := []int{2, 2, 3, 3}
	m := []int{2, 1, 3, 2}
	n := []int{-2, 1, 0, 3}

	par, err := (&Harmonic{Parallel: parallel.Config{Enabled: true, NumWorkers: 4, MinRows: 16}}).Generate(p, e, l, m, n)
	require.NoError(t, err)
	seq, err := (&Harmonic{Parallel: parallel.Sequential()}).Generate(p, e, l, m, n)
	require.NoError(t, err)
	assert.Equal(t, seq.Data, par.Data)
}

func TestHarmonic_Errors(t *testing.T) {
	h := NewHarmonic()
	_, err := h.Generate([]float64{10}, []float64{0.1, 0.2}, []int{2}, []int{2}, []int{0})
	assert.Error(t, err)
	_, err = h.Generate([]float64{10}, []float64{0.1}, []int{2}, []int{2, 1}, []int{0})
	assert.Error(t, err)
	_, err = h.Generate([]float64{-1}, []float64{0.1}, []int{2}, []int{2}, []int{0})
	assert.ErrorIs(t, err, errs.ErrDomain)
	_, err = h.Generate([]float64{10}, []float64{1}, []int{2}, []int{2}, []int{0})
	assert.ErrorIs(t, err, errs.ErrDomain)
}
