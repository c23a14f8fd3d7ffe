package selection

import (
	"cmp"
	"math/cmplx"
	"slices"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
)

// Ranker chooses the stored rows the Default policy keeps.
type Ranker interface {
	// Keep returns the stored rows to retain, without duplicates. amps has
	// one column per stored mode, ylms one entry per extended row of tab.
	Keep(amps *array.Matrix, ylms []complex128, tab *modes.Table, eps float64) ([]int, error)
}

// PowerRanker keeps, at every sample, the strongest modes whose cumulative
// power first reaches a fraction 1-eps of the total, and returns the union
// over samples. The m < 0 partners are ranked separately and fold back onto
// their stored m > 0 row, so a pair is kept when either member contributes.
//
// For a fixed input, lowering eps never removes a mode.
type PowerRanker struct{}

// NewPowerRanker returns the default ranker.
func NewPowerRanker() *PowerRanker {
	return &PowerRanker{}
}

// Keep implements Ranker. Rows are returned in ascending stored order.
func (PowerRanker) Keep(amps *array.Matrix, ylms []complex128, tab *modes.Table, eps float64) ([]int, error) {
	numStored := tab.NumStored()
	numPos := tab.NumMPos()
	width := tab.Len()

	kept := make([]bool, numStored)
	power := make([]float64, width)
	order := make([]int, width)

	for i := 0; i < amps.Rows; i++ {
		row := amps.Row(i)
		var total float64
		for j := 0; j < width; j++ {
			var h complex128
			if j < numStored {
				h = row[j] * ylms[j]
			} else {
				h = cmplx.Conj(row[j-numPos]) * ylms[j]
			}
			power[j] = real(h)*real(h) + imag(h)*imag(h)
			total += power[j]
			order[j] = j
		}

		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(power[b], power[a])
		})

		threshold := total * (1 - eps)
		var cum float64
		for k, j := range order {
			if k > 0 && cum >= threshold {
				break
			}
			cum += power[j]
			if j >= numStored {
				j -= numPos
			}
			kept[j] = true
		}
	}

	var keep []int
	for j, ok := range kept {
		if ok {
			keep = append(keep, j)
		}
	}
	return keep, nil
}
