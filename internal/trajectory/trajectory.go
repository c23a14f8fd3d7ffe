// Package trajectory produces the orbital evolution an EMRI waveform is built
// on: time samples with the semi-latus rectum, eccentricity, orbital phases
// and flux amplitude normalization at each sample.
package trajectory

import (
	"fmt"
	"math"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
)

// Physical constants.
const (
	// YRSIDSI is the sidereal year in seconds.
	YRSIDSI = 31558149.763545600

	// MTSUNSI is the geometrized solar mass G*Msun/c^3 in seconds.
	MTSUNSI = 4.925491025543576e-06
)

// Options controls the sampling of a trajectory.
type Options struct {
	// T is the maximum duration in years.
	T float64
	// Dt is the sample spacing in seconds of the output waveform.
	Dt float64
}

// Validate checks the sampling options.
func (o Options) Validate() error {
	if !(o.T > 0) || math.IsInf(o.T, 0) {
		return errs.Invalid("T", o.T, "must be positive and finite")
	}
	if !(o.Dt > 0) || math.IsInf(o.Dt, 0) {
		return errs.Invalid("dt", o.Dt, "must be positive and finite")
	}
	return nil
}

// Seconds returns the duration T in seconds.
func (o Options) Seconds() float64 {
	return o.T * YRSIDSI
}

// Generator computes a trajectory for a primary of mass M and a compact
// object of mass mu (solar masses), starting at (p0, e0).
type Generator interface {
	Generate(M, mu, p0, e0 float64, opts Options) (*Trajectory, error)
}

// Trajectory holds aligned per-sample arrays. T is in seconds.
type Trajectory struct {
	T       []float64
	P       []float64
	E       []float64
	PhiPhi  []float64
	PhiR    []float64
	AmpNorm []float64
}

// Len returns the number of samples.
func (tr *Trajectory) Len() int {
	return len(tr.T)
}

// End returns the time of the last sample.
func (tr *Trajectory) End() float64 {
	if len(tr.T) == 0 {
		return 0
	}
	return tr.T[len(tr.T)-1]
}

// Validate checks that the arrays are aligned, time increases strictly,
// p > 0, e >= 0 and every value is finite.
func (tr *Trajectory) Validate() error {
	n := len(tr.T)
	if n == 0 {
		return fmt.Errorf("%w: empty trajectory", errs.ErrDomain)
	}
	arrays := []struct {
		name string
		v    []float64
	}{
		{"t", tr.T}, {"p", tr.P}, {"e", tr.E},
		{"Phi_phi", tr.PhiPhi}, {"Phi_r", tr.PhiR}, {"amp_norm", tr.AmpNorm},
	}
	for _, a := range arrays {
		if len(a.v) != n {
			return fmt.Errorf("%w: trajectory array %s has %d samples, want %d", errs.ErrDomain, a.name, len(a.v), n)
		}
		for i, x := range a.v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return errs.InvalidAt(a.name, i, x, "must be finite")
			}
		}
	}

	for i := 0; i < n; i++ {
		if i > 0 && tr.T[i] <= tr.T[i-1] {
			return errs.InvalidAt("t", i, tr.T[i], "time must increase strictly")
		}
		if tr.P[i] <= 0 {
			return errs.InvalidAt("p", i, tr.P[i], "must be > 0")
		}
		if tr.E[i] < 0 {
			return errs.InvalidAt("e", i, tr.E[i], "must be >= 0")
		}
	}
	return nil
}

// Separatrix returns the Schwarzschild separatrix p = 6 + 2e.
func Separatrix(e float64) float64 {
	return 6 + 2*e
}

func (tr *Trajectory) append(t float64, s state) {
	tr.T = append(tr.T, t)
	tr.P = append(tr.P, s.p)
	tr.E = append(tr.E, s.e)
	tr.PhiPhi = append(tr.PhiPhi, s.phiPhi)
	tr.PhiR = append(tr.PhiR, s.phiR)
	tr.AmpNorm = append(tr.AmpNorm, AmpNorm(s.p, s.e))
}
