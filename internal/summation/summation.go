// Package summation turns the retained mode amplitudes, angular factors and
// orbital phases into the complex time-domain waveform h = h+ - i hx.
package summation

import (
	"fmt"
	"math"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
)

// Input is the per-batch data handed to a Summator. Every per-sample slice
// covers the same span of trajectory samples.
type Input struct {
	// T holds the trajectory times in seconds.
	T []float64

	// Amplitudes has one row per sample and K columns.
	Amplitudes *array.Matrix

	// Angular holds the K angular factors of the retained modes followed by
	// the K factors of their -m partners.
	Angular []complex128

	PhiPhi []float64
	PhiR   []float64

	// M and N are the m and n of the retained modes.
	M []int
	N []int

	// Dt is the output cadence in seconds.
	Dt float64

	// TSeconds bounds the output duration.
	TSeconds float64
}

// Validate checks that the slices of in are mutually consistent.
func (in *Input) Validate() error {
	n := len(in.T)
	if n == 0 {
		return fmt.Errorf("summation: no samples")
	}
	if len(in.PhiPhi) != n || len(in.PhiR) != n {
		return fmt.Errorf("summation: phases have %d and %d samples, want %d", len(in.PhiPhi), len(in.PhiR), n)
	}
	if in.Amplitudes == nil || in.Amplitudes.Rows != n {
		return fmt.Errorf("summation: amplitude rows do not match %d samples", n)
	}
	if err := in.Amplitudes.Validate(); err != nil {
		return fmt.Errorf("summation: %w", err)
	}
	k := in.Amplitudes.Cols
	if len(in.Angular) != 2*k {
		return fmt.Errorf("summation: %d angular factors for %d modes", len(in.Angular), k)
	}
	if len(in.M) != k || len(in.N) != k {
		return fmt.Errorf("summation: %d m and %d n values for %d modes", len(in.M), len(in.N), k)
	}
	return nil
}

// Summator sums the modes of one batch.
type Summator interface {
	Sum(in *Input) ([]complex128, error)
}

// term returns the contribution of mode k at phases (phiPhi, phiR): the mode
// itself and, for m > 0, its conjugate -m partner.
func term(a, yPlus, yMinus complex128, m, n int, phiPhi, phiR float64) complex128 {
	phase := float64(m)*phiPhi + float64(n)*phiR
	sin, cos := math.Sincos(phase)
	rot := complex(cos, -sin) // e^{-i phase}

	h := yPlus * a * rot
	if m > 0 {
		h += yMinus * complex(real(a), -imag(a)) * complex(cos, sin)
	}
	return h
}
