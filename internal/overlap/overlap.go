// Package overlap compares two complex waveforms through their frequency-
// domain inner product.
package overlap

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by the comparison functions.
var (
	ErrEmpty    = errors.New("overlap: empty waveform")
	ErrZeroNorm = errors.New("overlap: waveform has zero norm")
)

// Inner returns the white-noise inner product Re sum conj(A_k) B_k / n of the
// spectra of a and b. Both waveforms are truncated to the shorter length and
// zero-padded to a power of two of at least 16 samples.
func Inner(a, b []complex128) (float64, error) {
	n := min(len(a), len(b))
	if n == 0 {
		return 0, ErrEmpty
	}

	size := nextPow2(n)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, fmt.Errorf("overlap: fft plan of size %d: %w", size, err)
	}

	fa, err := spectrum(plan.Forward, a[:n], size)
	if err != nil {
		return 0, err
	}
	fb, err := spectrum(plan.Forward, b[:n], size)
	if err != nil {
		return 0, err
	}

	var sum float64
	for k := range fa {
		// Re(conj(x) y)
		sum += real(fa[k])*real(fb[k]) + imag(fa[k])*imag(fb[k])
	}
	return sum / float64(size), nil
}

// Overlap returns the normalized inner product of a and b, in [-1, 1].
// Both inputs are truncated to their common length before every product.
func Overlap(a, b []complex128) (float64, error) {
	n := min(len(a), len(b))
	a, b = a[:n], b[:n]

	ab, err := Inner(a, b)
	if err != nil {
		return 0, err
	}
	aa, err := Inner(a, a)
	if err != nil {
		return 0, err
	}
	bb, err := Inner(b, b)
	if err != nil {
		return 0, err
	}
	if aa == 0 || bb == 0 {
		return 0, ErrZeroNorm
	}
	return ab / math.Sqrt(aa*bb), nil
}

// Mismatch returns 1 - Overlap(a, b).
func Mismatch(a, b []complex128) (float64, error) {
	o, err := Overlap(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - o, nil
}

func spectrum(forward func(dst, src []complex128) error, x []complex128, size int) ([]complex128, error) {
	in := make([]complex128, size)
	copy(in, x)
	out := make([]complex128, size)
	if err := forward(out, in); err != nil {
		return nil, fmt.Errorf("overlap: forward fft: %w", err)
	}
	return out, nil
}

// minSize keeps tiny inputs away from degenerate transform sizes.
const minSize = 16

func nextPow2(n int) int {
	if n <= minSize {
		return minSize
	}
	return 1 << bits.Len(uint(n-1))
}
