// Package waveform assembles EMRI waveforms: it drives the trajectory,
// amplitude, angular and summation collaborators, normalizes and selects
// modes, and batches the sample axis on the model's array backend.
package waveform

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/amplitude"
	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/backend/cpu"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
	"github.com/KwintenF/FastEMRIWaveforms/internal/selection"
	"github.com/KwintenF/FastEMRIWaveforms/internal/summation"
	"github.com/KwintenF/FastEMRIWaveforms/internal/trajectory"
	"github.com/KwintenF/FastEMRIWaveforms/internal/ylm"
	"go.uber.org/zap"
)

// Model configuration errors.
var (
	ErrGPUUnsupported      = fmt.Errorf("%w: model has no GPU capability", errs.ErrConfiguration)
	ErrBatchingUnsupported = fmt.Errorf("%w: model does not support batching", errs.ErrConfiguration)
)

// Modules are the collaborators a model is built from.
type Modules struct {
	Trajectory trajectory.Generator
	Amplitude  amplitude.Generator
	Ylm        ylm.Generator
	Summation  summation.Summator
	Modes      *modes.Table

	// Ranker drives the default mode selection. Nil means the power ranker.
	Ranker selection.Ranker
}

// Config holds the fixed capabilities of a model.
type Config struct {
	// Backend is the array engine. Nil means a CPU engine.
	Backend array.Backend

	// Normalize rescales amplitudes to the trajectory flux normalization.
	Normalize bool

	// GPUCapable allows a GPU backend.
	GPUCapable bool

	// AllowBatching allows splitting the sample axis. Only valid when the
	// summation produces one output sample per trajectory sample.
	AllowBatching bool

	// Logger receives warnings and progress. Nil means no logging.
	Logger *zap.Logger
}

// Model is a waveform model bound to one backend. Generate keeps no state on
// the model, so concurrent calls are safe when the collaborators are.
type Model struct {
	mods    Modules
	cfg     Config
	backend array.Backend
	logger  *zap.Logger
}

// New validates the modules and capabilities and binds the backend.
func New(mods Modules, cfg Config) (*Model, error) {
	switch {
	case mods.Trajectory == nil:
		return nil, fmt.Errorf("%w: no trajectory generator", errs.ErrConfiguration)
	case mods.Amplitude == nil:
		return nil, fmt.Errorf("%w: no amplitude generator", errs.ErrConfiguration)
	case mods.Ylm == nil:
		return nil, fmt.Errorf("%w: no angular generator", errs.ErrConfiguration)
	case mods.Summation == nil:
		return nil, fmt.Errorf("%w: no summator", errs.ErrConfiguration)
	case mods.Modes == nil:
		return nil, fmt.Errorf("%w: no mode catalogue", errs.ErrConfiguration)
	}
	if mods.Ranker == nil {
		mods.Ranker = selection.NewPowerRanker()
	}

	b := cfg.Backend
	if b == nil {
		b = cpu.New()
	}
	if b.Device().IsGPU() && !cfg.GPUCapable {
		return nil, fmt.Errorf("%w: backend %s", ErrGPUUnsupported, b.Name())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("waveform model ready",
		zap.String("backend", b.Name()),
		zap.Int("modes", mods.Modes.NumStored()),
		zap.Bool("normalize", cfg.Normalize),
		zap.Bool("batching", cfg.AllowBatching),
	)

	return &Model{mods: mods, cfg: cfg, backend: b, logger: logger}, nil
}

// Backend returns the bound array engine.
func (m *Model) Backend() array.Backend {
	return m.backend
}

// Modes returns the mode catalogue.
func (m *Model) Modes() *modes.Table {
	return m.mods.Modes
}

// GPUCapable reports whether the model may run on a GPU backend.
func (m *Model) GPUCapable() bool {
	return m.cfg.GPUCapable
}

// AllowBatching reports whether the model accepts a batch size.
func (m *Model) AllowBatching() bool {
	return m.cfg.AllowBatching
}

// Close releases the backend.
func (m *Model) Close() {
	m.backend.Release()
}
