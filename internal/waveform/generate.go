package waveform

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/batch"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
	"github.com/KwintenF/FastEMRIWaveforms/internal/normalize"
	"github.com/KwintenF/FastEMRIWaveforms/internal/selection"
	"github.com/KwintenF/FastEMRIWaveforms/internal/summation"
	"github.com/KwintenF/FastEMRIWaveforms/internal/trajectory"
	"go.uber.org/zap"
)

// staged holds the trajectory arrays on the backend.
type staged struct {
	t, p, e, phiPhi, phiR, ampNorm []float64
}

// Generate produces one waveform. Inputs are validated before any
// computation; the first failure aborts the call without partial output.
func (m *Model) Generate(p Params) (*Result, error) {
	if err := m.validateRequest(&p); err != nil {
		return nil, err
	}
	theta, phi, err := viewingAngles(p.Theta, p.Phi)
	if err != nil {
		return nil, err
	}
	if err := m.checkInit(&p); err != nil {
		return nil, err
	}

	opts := trajectory.Options{T: p.T, Dt: p.Dt}
	traj, err := m.mods.Trajectory.Generate(p.M, p.Mu, p.P0, p.E0, opts)
	if err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}
	if err := traj.Validate(); err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}

	b := m.backend
	tr := staged{
		t:       b.Stage(traj.T),
		p:       b.Stage(traj.P),
		e:       b.Stage(traj.E),
		phiPhi:  b.Stage(traj.PhiPhi),
		phiR:    b.Stage(traj.PhiR),
		ampNorm: b.Stage(traj.AmpNorm),
	}

	ylms, err := m.angular(theta, phi)
	if err != nil {
		return nil, err
	}

	size := p.BatchSize
	if !m.cfg.AllowBatching {
		size = NoBatching
	}
	spans := batch.Split(traj.Len(), size)

	var progress batch.Progress = batch.Nop{}
	if p.ShowProgress {
		progress = batch.NewLogProgress(m.logger)
	}

	var last []modes.Mode
	stage := func(_ int, s batch.Span) ([]complex128, int, error) {
		res, h, err := m.runBatch(&p, tr, s, ylms, opts.Seconds())
		if err != nil {
			return nil, 0, err
		}
		last = res.Modes
		return h, res.Len(), nil
	}

	h, stats, err := batch.Run(b, spans, stage, progress)
	if err != nil {
		return nil, err
	}

	kept := make([]int, len(stats))
	for i, st := range stats {
		kept[i] = st.ModesKept
		m.logger.Debug("waveform batch summed",
			zap.Stringer("span", st.Span),
			zap.Int("samples", st.Samples),
			zap.Int("modes_kept", st.ModesKept))
	}
	return &Result{
		Waveform:   h,
		PlungeTime: traj.End(),
		ModesKept:  kept,
		Modes:      last,
	}, nil
}

// angular evaluates the angular factors once per unique (l, m) and expands
// them onto the extended mode rows.
func (m *Model) angular(theta, phi float64) ([]complex128, error) {
	tab := m.mods.Modes
	unique := tab.UniqueLM()
	l := make([]int, len(unique))
	mm := make([]int, len(unique))
	for i, lm := range unique {
		l[i], mm[i] = lm.L, lm.M
	}

	y, err := m.mods.Ylm.Generate(l, mm, theta, phi)
	if err != nil {
		return nil, fmt.Errorf("angular factors: %w", err)
	}
	if len(y) != len(unique) {
		return nil, fmt.Errorf("angular factors: got %d values for %d (l, m) pairs", len(y), len(unique))
	}
	return m.backend.Take(y, tab.InverseLM()), nil
}

// runBatch computes amplitudes, normalizes and selects modes, and sums the
// waveform of span s.
func (m *Model) runBatch(p *Params, tr staged, s batch.Span, ylms []complex128, tsec float64) (*selection.Result, []complex128, error) {
	tab := m.mods.Modes
	lo, hi := s.Start, s.End

	l, mm, n := tab.Stored()
	amps, err := m.mods.Amplitude.Generate(tr.p[lo:hi], tr.e[lo:hi], l, mm, n)
	if err != nil {
		return nil, nil, fmt.Errorf("amplitudes: %w", err)
	}

	if m.cfg.Normalize {
		amps, err = normalize.Rows(m.backend, amps, tab.Weights(), tr.ampNorm[lo:hi])
		if err != nil {
			return nil, nil, fmt.Errorf("normalize: %w", err)
		}
	}

	res, err := selection.Apply(m.backend, tab, m.mods.Ranker, p.Selection, p.Eps, amps, ylms)
	if err != nil {
		return nil, nil, err
	}

	h, err := m.mods.Summation.Sum(&summation.Input{
		T:          tr.t[lo:hi],
		Amplitudes: res.Amplitudes,
		Angular:    res.Angular,
		PhiPhi:     tr.phiPhi[lo:hi],
		PhiR:       tr.phiR[lo:hi],
		M:          res.M(),
		N:          res.N(),
		Dt:         p.Dt,
		TSeconds:   tsec,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("summation: %w", err)
	}
	return res, h, nil
}
