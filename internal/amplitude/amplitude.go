// Package amplitude computes the complex amplitude of each harmonic mode
// along a trajectory.
package amplitude

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
)

// Generator evaluates mode amplitudes. The result has one row per (p, e)
// sample and one column per (l, m, n) triple, in the order given.
type Generator interface {
	Generate(p, e []float64, l, m, n []int) (*array.Matrix, error)
}

// Harmonic is a closed-form amplitude model for eccentric orbits. The radial
// harmonic n of an (l, m) multipole is weighted by the Bessel function
// J_n((m+n)e), higher multipoles are suppressed by powers of the orbital
// velocity v = p^(-1/2), and current multipoles (l+m odd) carry an extra
// factor of -i*v.
//
// Only the relative structure matters when amplitudes are normalized to the
// trajectory flux.
type Harmonic struct {
	Parallel parallel.Config
}

// NewHarmonic returns the model with the default parallel configuration.
func NewHarmonic() *Harmonic {
	return &Harmonic{Parallel: parallel.DefaultConfig()}
}

// Generate implements Generator.
func (h *Harmonic) Generate(p, e []float64, l, m, n []int) (*array.Matrix, error) {
	if len(p) != len(e) {
		return nil, fmt.Errorf("amplitude: %d p samples but %d e samples", len(p), len(e))
	}
	if len(l) != len(m) || len(l) != len(n) {
		return nil, fmt.Errorf("amplitude: mode arrays differ in length (%d, %d, %d)", len(l), len(m), len(n))
	}
	for i := range p {
		if !(p[i] > 0) {
			return nil, errs.InvalidAt("p", i, p[i], "must be > 0")
		}
		if !(e[i] >= 0) || e[i] >= 1 {
			return nil, errs.InvalidAt("e", i, e[i], "must be in [0, 1)")
		}
	}

	out := array.NewMatrix(len(p), len(l))
	parallel.Rows(len(p), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := out.Row(i)
			for j := range l {
				row[j] = mode(p[i], e[i], l[j], m[j], n[j])
			}
		}
	}, h.Parallel)

	return out, nil
}

func mode(p, e float64, l, m, n int) complex128 {
	v := 1 / math.Sqrt(p)
	k := float64(m + n)

	// J_n(0) is 1 for n = 0 and 0 otherwise, so circular orbits keep only n = 0.
	radial := math.Jn(n, math.Abs(k)*e)
	if m == 0 && n == 0 {
		// The static m = 0 harmonic does not radiate.
		radial = 0
	}

	mag := radial * math.Pow(v, float64(l-2)) / p
	if (l+m)%2 != 0 {
		return cmplx.Rect(mag*v, -math.Pi/2)
	}
	return complex(mag, 0)
}
