package trajectory

import (
	"fmt"
	"math"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
)

// Defaults of the flux-driven inspiral.
const (
	DefaultSparsePoints = 100
	DefaultStopBuffer   = 0.1
	defaultMaxSteps     = 100000
	maxRefinements      = 40
)

// state is the integrated quantity, in geometric units of the primary mass.
type state struct {
	p, e         float64
	phiPhi, phiR float64
}

func (s state) axpy(h float64, d state) state {
	return state{
		p:      s.p + h*d.p,
		e:      s.e + h*d.e,
		phiPhi: s.phiPhi + h*d.phiPhi,
		phiR:   s.phiR + h*d.phiR,
	}
}

// Frequencies returns the radial and azimuthal orbital frequencies in units
// of 1/M: the Keplerian mean motion with leading-order periastron advance.
func Frequencies(p, e float64) (omegaPhi, omegaR float64) {
	omegaR = math.Pow((1-e*e)/p, 1.5)
	omegaPhi = omegaR * (1 + 3/p)
	return omegaPhi, omegaR
}

// AmpNorm returns the flux amplitude normalization at (p, e): the square root
// of the quadrupole energy flux per unit mass ratio squared.
func AmpNorm(p, e float64) float64 {
	e2 := e * e
	a := p / (1 - e2)
	enh := 1 + 73.0/24.0*e2 + 37.0/96.0*e2*e2
	return math.Sqrt(32.0 / 5.0 * enh / (math.Pow(a, 5) * math.Pow(1-e2, 3.5)))
}

// FluxInspiral evolves (p, e) under the leading-order radiation-reaction
// fluxes with a fixed-step RK4 integrator, and stops at the requested
// duration or when p comes within StopBuffer of the separatrix.
//
// In dense mode one sample is produced every Dt seconds. In sparse mode the
// step is about T/SparsePoints and shrinks toward the separatrix.
type FluxInspiral struct {
	Dense        bool
	SparsePoints int
	StopBuffer   float64
	MaxSteps     int
}

// NewDense returns an inspiral sampled at the waveform cadence.
func NewDense() *FluxInspiral {
	return &FluxInspiral{Dense: true, StopBuffer: DefaultStopBuffer, MaxSteps: math.MaxInt}
}

// NewSparse returns an inspiral sampled on about points steps.
func NewSparse(points int) *FluxInspiral {
	if points <= 0 {
		points = DefaultSparsePoints
	}
	return &FluxInspiral{SparsePoints: points, StopBuffer: DefaultStopBuffer, MaxSteps: defaultMaxSteps}
}

// Generate implements Generator.
func (f *FluxInspiral) Generate(M, mu, p0, e0 float64, opts Options) (*Trajectory, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch {
	case !(M > 0):
		return nil, errs.Invalid("M", M, "must be > 0")
	case !(mu > 0):
		return nil, errs.Invalid("mu", mu, "must be > 0")
	case !(e0 >= 0) || e0 >= 1:
		return nil, errs.Invalid("e0", e0, "must be in [0, 1)")
	case !(p0 > Separatrix(e0)):
		return nil, errs.Invalid("p0", p0, fmt.Sprintf("must be beyond the separatrix %g", Separatrix(e0)))
	}

	if f.SparsePoints <= 0 {
		f = &FluxInspiral{Dense: f.Dense, SparsePoints: DefaultSparsePoints, StopBuffer: f.StopBuffer, MaxSteps: f.MaxSteps}
	}
	if f.MaxSteps <= 0 {
		f = &FluxInspiral{Dense: f.Dense, SparsePoints: f.SparsePoints, StopBuffer: f.StopBuffer, MaxSteps: defaultMaxSteps}
		if f.Dense {
			f.MaxSteps = math.MaxInt
		}
	}

	q := mu / M
	unit := M * MTSUNSI // seconds per geometric time unit

	tr := &Trajectory{}
	s := state{p: p0, e: e0}
	tr.append(0, s)

	var err error
	if f.Dense {
		err = f.dense(tr, s, q, unit, opts)
	} else {
		err = f.sparse(tr, s, q, unit, opts)
	}
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (f *FluxInspiral) dense(tr *Trajectory, s state, q, unit float64, opts Options) error {
	n := int(math.Floor(opts.Seconds()/opts.Dt)) + 1
	h := opts.Dt / unit
	for k := 1; k < n && k <= f.MaxSteps; k++ {
		next := rk4(s, h, q)
		if f.plunged(next) {
			break
		}
		if err := finite(next, float64(k)*opts.Dt); err != nil {
			return err
		}
		s = next
		tr.append(float64(k)*opts.Dt, s)
	}
	return nil
}

func (f *FluxInspiral) sparse(tr *Trajectory, s state, q, unit float64, opts Options) error {
	end := opts.Seconds() / unit
	hmax := end / float64(f.SparsePoints)
	t := 0.0

	for step := 0; step < f.MaxSteps && t < end; step++ {
		d := derivatives(s, q)
		h := min(hmax, end-t)
		last := end-t-h < 1e-9*hmax
		if last {
			h = end - t
		}
		// Shrink steps as the orbit approaches the separatrix.
		if gap := s.p - Separatrix(s.e); d.p < 0 {
			if limit := 0.1 * gap / -d.p; limit < h {
				h, last = limit, false
			}
		}

		next := rk4(s, h, q)
		refined := 0
		for f.plunged(next) && refined < maxRefinements {
			h, last = h/2, false
			next = rk4(s, h, q)
			refined++
		}
		if f.plunged(next) || t+h == t {
			break
		}
		t += h
		seconds := t * unit
		if last {
			t, seconds = end, opts.Seconds()
		}
		if err := finite(next, seconds); err != nil {
			return err
		}
		s = next
		tr.append(seconds, s)
		if refined > 0 || last {
			break
		}
	}
	return nil
}

func (f *FluxInspiral) plunged(s state) bool {
	return s.p-Separatrix(s.e) < f.StopBuffer
}

func finite(s state, t float64) error {
	for _, v := range []float64{s.p, s.e, s.phiPhi, s.phiR} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: integration diverged at t = %g s", errs.ErrDomain, t)
		}
	}
	return nil
}

// derivatives returns d/dt of the state in geometric units. Eccentricity
// decays in proportion to itself and is clamped at zero.
func derivatives(s state, q float64) state {
	e := max(s.e, 0)
	e2 := e * e
	w := math.Pow(1-e2, 1.5)
	p3 := s.p * s.p * s.p

	omegaPhi, omegaR := Frequencies(s.p, e)
	return state{
		p:      -64.0 / 5.0 * q * w / p3 * (1 + 7.0/8.0*e2),
		e:      -304.0 / 15.0 * q * e * w / (p3 * s.p) * (1 + 121.0/304.0*e2),
		phiPhi: omegaPhi,
		phiR:   omegaR,
	}
}

func rk4(s state, h, q float64) state {
	k1 := derivatives(s, q)
	k2 := derivatives(s.axpy(h/2, k1), q)
	k3 := derivatives(s.axpy(h/2, k2), q)
	k4 := derivatives(s.axpy(h, k3), q)

	next := state{
		p:      s.p + h/6*(k1.p+2*k2.p+2*k3.p+k4.p),
		e:      s.e + h/6*(k1.e+2*k2.e+2*k3.e+k4.e),
		phiPhi: s.phiPhi + h/6*(k1.phiPhi+2*k2.phiPhi+2*k3.phiPhi+k4.phiPhi),
		phiR:   s.phiR + h/6*(k1.phiR+2*k2.phiR+2*k3.phiR+k4.phiR),
	}
	next.e = max(next.e, 0)
	return next
}
