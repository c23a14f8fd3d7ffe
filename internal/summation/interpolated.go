package summation

import (
	"fmt"
	"math"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
	"gonum.org/v1/gonum/interp"
)

// Interpolated fits natural cubic splines through a sparse trajectory and
// evaluates the mode sum on the uniform grid t0 + k*Dt, up to the earlier of
// the trajectory end and t0 + TSeconds.
//
// The output grid depends on the whole trajectory, so the input cannot be
// split into batches.
type Interpolated struct {
	Parallel parallel.Config
}

// NewInterpolated returns an interpolating summator with the default parallel
// configuration.
func NewInterpolated() *Interpolated {
	return &Interpolated{Parallel: parallel.DefaultConfig()}
}

// Sum implements Summator.
func (s *Interpolated) Sum(in *Input) ([]complex128, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if len(in.T) < 2 {
		return nil, fmt.Errorf("%w: interpolation needs at least 2 trajectory samples, got %d", errs.ErrDomain, len(in.T))
	}
	if !(in.Dt > 0) {
		return nil, errs.Invalid("dt", in.Dt, "must be > 0")
	}

	k := in.Amplitudes.Cols
	splines := make([]interp.NaturalCubic, 2*k+2)
	fit := func(i int, ys []float64, name string) error {
		if err := splines[i].Fit(in.T, ys); err != nil {
			return fmt.Errorf("summation: fit %s: %w", name, err)
		}
		return nil
	}

	re := make([]float64, len(in.T))
	im := make([]float64, len(in.T))
	for j := 0; j < k; j++ {
		for i := range in.T {
			a := in.Amplitudes.At(i, j)
			re[i], im[i] = real(a), imag(a)
		}
		if err := fit(2*j, re, "amplitude"); err != nil {
			return nil, err
		}
		if err := fit(2*j+1, im, "amplitude"); err != nil {
			return nil, err
		}
	}
	if err := fit(2*k, in.PhiPhi, "Phi_phi"); err != nil {
		return nil, err
	}
	if err := fit(2*k+1, in.PhiR, "Phi_r"); err != nil {
		return nil, err
	}

	t0 := in.T[0]
	end := in.T[len(in.T)-1]
	if in.TSeconds > 0 {
		end = math.Min(end, t0+in.TSeconds)
	}
	n := int(math.Floor((end-t0)/in.Dt+1e-9)) + 1

	out := make([]complex128, n)
	parallel.Rows(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			t := min(t0+float64(i)*in.Dt, end)
			phiPhi := splines[2*k].Predict(t)
			phiR := splines[2*k+1].Predict(t)

			var h complex128
			for j := 0; j < k; j++ {
				a := complex(splines[2*j].Predict(t), splines[2*j+1].Predict(t))
				h += term(a, in.Angular[j], in.Angular[k+j], in.M[j], in.N[j], phiPhi, phiR)
			}
			out[i] = h
		}
	}, s.Parallel)

	return out, nil
}
