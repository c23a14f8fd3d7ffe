package summation

import (
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
)

// Direct evaluates the mode sum at every trajectory sample. The output has
// one sample per input sample, so a long trajectory can be split into
// batches and the partial waveforms concatenated.
type Direct struct {
	Parallel parallel.Config
}

// NewDirect returns a direct summator with the default parallel configuration.
func NewDirect() *Direct {
	return &Direct{Parallel: parallel.DefaultConfig()}
}

// Sum implements Summator.
func (d *Direct) Sum(in *Input) ([]complex128, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	k := in.Amplitudes.Cols
	out := make([]complex128, len(in.T))
	parallel.Rows(len(in.T), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := in.Amplitudes.Row(i)
			var h complex128
			for j := 0; j < k; j++ {
				h += term(row[j], in.Angular[j], in.Angular[k+j], in.M[j], in.N[j], in.PhiPhi[i], in.PhiR[i])
			}
			out[i] = h
		}
	}, d.Parallel)

	return out, nil
}
