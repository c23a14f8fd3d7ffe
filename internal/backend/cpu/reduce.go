package cpu

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// WeightedRowNorm returns sqrt(sum_j w[j]*|a[i,j]|^2) for every row i.
func (e *Engine) WeightedRowNorm(a *array.Matrix, w []float64) []float64 {
	if len(w) != a.Cols {
		panic(fmt.Sprintf("weighted row norm: %d weights for %d columns", len(w), a.Cols))
	}

	out := make([]float64, a.Rows)
	parallel.Rows(a.Rows, func(lo, hi int) {
		re := make([]float64, a.Cols)
		im := make([]float64, a.Cols)
		pw := make([]float64, a.Cols)
		for i := lo; i < hi; i++ {
			for j, v := range a.Row(i) {
				re[j] = real(v)
				im[j] = imag(v)
			}
			vecmath.Power(pw, re, im)
			out[i] = math.Sqrt(floats.Dot(pw, w))
		}
	}, e.par)

	return out
}

// ScaleRows returns a new matrix whose row i is a's row i times f[i].
func (e *Engine) ScaleRows(a *array.Matrix, f []float64) *array.Matrix {
	if len(f) != a.Rows {
		panic(fmt.Sprintf("scale rows: %d factors for %d rows", len(f), a.Rows))
	}

	out := a.Clone()
	if a.Cols == 0 {
		return out
	}
	parallel.Rows(a.Rows, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			floats.Scale(f[i], interleaved(out.Row(i)))
		}
	}, e.par)

	return out
}

// interleaved views a complex128 slice as its real/imag float64 pairs.
func interleaved(c []complex128) []float64 {
	//nolint:gosec // unsafe.Slice for zero-copy view, complex128 is two packed float64
	return unsafe.Slice((*float64)(unsafe.Pointer(&c[0])), 2*len(c))
}
