// Package normalize rescales per-mode amplitudes so that the radiated power at
// every trajectory sample matches the flux normalization of the trajectory.
package normalize

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
)

// Rows returns a copy of amps with row i scaled by target[i] / |a_i|, where
//
//	|a_i|^2 = sum_j weights[j] * |amps[i, j]|^2
//
// weights carries the symmetry multiplicity of each stored column (2 for
// m > 0, whose m < 0 partner is not stored). Rows whose computed magnitude is
// zero are copied unscaled. amps is not modified.
func Rows(b array.Backend, amps *array.Matrix, weights, target []float64) (*array.Matrix, error) {
	if len(weights) != amps.Cols {
		return nil, fmt.Errorf("normalize: %d weights for %d mode columns", len(weights), amps.Cols)
	}
	if len(target) != amps.Rows {
		return nil, fmt.Errorf("normalize: %d normalization samples for %d amplitude rows", len(target), amps.Rows)
	}

	norm := b.WeightedRowNorm(amps, weights)
	factor := make([]float64, len(norm))
	for i, n := range norm {
		if n == 0 {
			factor[i] = 1
			continue
		}
		factor[i] = target[i] / n
	}

	return b.ScaleRows(amps, factor), nil
}
