package cpu

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
)

// TakeColumns gathers the columns idx of a, in idx order.
func (e *Engine) TakeColumns(a *array.Matrix, idx []int) *array.Matrix {
	for _, j := range idx {
		if j < 0 || j >= a.Cols {
			panic(fmt.Sprintf("take columns: index %d out of range [0, %d)", j, a.Cols))
		}
	}

	out := array.NewMatrix(a.Rows, len(idx))
	parallel.Rows(a.Rows, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			src := a.Row(i)
			dst := out.Row(i)
			for k, j := range idx {
				dst[k] = src[j]
			}
		}
	}, e.par)

	return out
}

// Take gathers v[idx[k]] into a new slice.
func (e *Engine) Take(v []complex128, idx []int) []complex128 {
	out := make([]complex128, len(idx))
	for k, j := range idx {
		if j < 0 || j >= len(v) {
			panic(fmt.Sprintf("take: index %d out of range [0, %d)", j, len(v)))
		}
		out[k] = v[j]
	}
	return out
}

// Concat joins parts in order into one new slice.
func (e *Engine) Concat(parts ...[]complex128) []complex128 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]complex128, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
