package waveform

import (
	"fmt"
	"math"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
	"github.com/KwintenF/FastEMRIWaveforms/internal/selection"
	"github.com/KwintenF/FastEMRIWaveforms/internal/trajectory"
	"go.uber.org/zap"
)

// Domain limits of the Schwarzschild eccentric models.
const (
	MaxE0        = 0.75
	MaxMassRatio = 1e-4
	DefaultDt    = 10.0
	DefaultT     = 1.0
	DefaultEps   = 1e-5
	NoBatching   = -1
)

// Params are the inputs of one waveform.
type Params struct {
	M     float64 // primary mass (solar masses)
	Mu    float64 // compact object mass (solar masses)
	P0    float64 // initial semi-latus rectum
	E0    float64 // initial eccentricity
	Theta float64 // polar viewing angle
	Phi   float64 // azimuthal viewing angle

	Dt  float64 // sample spacing in seconds
	T   float64 // duration in years
	Eps float64 // fractional power budget of the default selection

	Selection    selection.Policy
	BatchSize    int // <= 0 for a single batch
	ShowProgress bool
}

// DefaultParams returns Params with the default cadence, duration, accuracy
// and selection; the physical parameters are left zero.
func DefaultParams() Params {
	return Params{
		Dt:        DefaultDt,
		T:         DefaultT,
		Eps:       DefaultEps,
		Selection: selection.Default(),
		BatchSize: NoBatching,
	}
}

// validateRequest checks the selection and batching request.
func (m *Model) validateRequest(p *Params) error {
	if err := p.Selection.Validate(); err != nil {
		return err
	}
	if p.BatchSize > 0 && !m.cfg.AllowBatching {
		return fmt.Errorf("%w: batch size %d", ErrBatchingUnsupported, p.BatchSize)
	}
	if p.Selection.Kind() == selection.KindDefault && !(p.Eps >= 0 && p.Eps < 1) {
		return errs.Invalid("eps", p.Eps, "must be in [0, 1)")
	}
	return nil
}

// viewingAngles checks theta and wraps phi into [0, 2pi).
func viewingAngles(theta, phi float64) (float64, float64, error) {
	if !(theta >= 0 && theta <= math.Pi) {
		return 0, 0, errs.Invalid("theta", theta, "must be in [0, pi]")
	}
	if math.IsNaN(phi) || math.IsInf(phi, 0) {
		return 0, 0, errs.Invalid("phi", phi, "must be finite")
	}
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return theta, phi, nil
}

// checkInit validates the physical inputs. A large mass ratio is outside the
// validated regime but only warned about.
func (m *Model) checkInit(p *Params) error {
	switch {
	case !(p.M > 0):
		return errs.Invalid("M", p.M, "must be > 0")
	case !(p.Mu > 0):
		return errs.Invalid("mu", p.Mu, "must be > 0")
	case !(p.E0 >= 0):
		return errs.Invalid("e0", p.E0, "must be >= 0")
	case p.E0 > MaxE0:
		return errs.Invalid("e0", p.E0, fmt.Sprintf("must be <= %g", MaxE0))
	case !(p.P0 > trajectory.Separatrix(p.E0)):
		return errs.Invalid("p0", p.P0, fmt.Sprintf("must be > 6 + 2*e0 = %g", trajectory.Separatrix(p.E0)))
	}

	if q := p.Mu / p.M; q > MaxMassRatio {
		m.logger.Warn("mass ratio outside the validated regime",
			zap.Float64("mass_ratio", q),
			zap.Float64("max", MaxMassRatio),
		)
	}
	return nil
}

// Result is the output of one waveform call.
type Result struct {
	// Waveform is h+ - i hx, the batches concatenated in order.
	Waveform []complex128

	// PlungeTime is the last trajectory time in seconds.
	PlungeTime float64

	// ModesKept holds the number of retained modes of each batch.
	ModesKept []int

	// Modes holds the retained (l, m, n) of the last batch.
	Modes []modes.Mode
}

// NumModesKept returns the number of modes retained by the last batch.
func (r *Result) NumModesKept() int {
	if len(r.ModesKept) == 0 {
		return 0
	}
	return r.ModesKept[len(r.ModesKept)-1]
}
