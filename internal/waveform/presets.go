package waveform

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/amplitude"
	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/backend"
	"github.com/KwintenF/FastEMRIWaveforms/internal/config"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
	"github.com/KwintenF/FastEMRIWaveforms/internal/summation"
	"github.com/KwintenF/FastEMRIWaveforms/internal/trajectory"
	"github.com/KwintenF/FastEMRIWaveforms/internal/ylm"
	"go.uber.org/zap"
)

// preset fixes the collaborators and capabilities of a named model.
type preset struct {
	name          string
	dense         bool
	interpolate   bool
	gpuCapable    bool
	allowBatching bool
}

var (
	fastPreset = preset{
		name:        "FastSchwarzschildEccentricFlux",
		interpolate: true,
		gpuCapable:  true,
	}
	slowPreset = preset{
		name:          "SlowSchwarzschildEccentricFlux",
		dense:         true,
		allowBatching: true,
	}
)

// NewFastSchwarzschildEccentricFlux builds the fast model: a sparse
// trajectory whose modes are summed through cubic splines. It may run on a
// GPU backend and does not batch.
func NewFastSchwarzschildEccentricFlux(cfg *config.Config, logger *zap.Logger) (*Model, error) {
	return build(fastPreset, cfg, nil, logger)
}

// NewSlowSchwarzschildEccentricFlux builds the reference model: a trajectory
// sampled at the output cadence and summed directly. It runs on the CPU only
// and accepts a batch size.
func NewSlowSchwarzschildEccentricFlux(cfg *config.Config, logger *zap.Logger) (*Model, error) {
	return build(slowPreset, cfg, nil, logger)
}

// FromConfig builds the model named by cfg.Model.
func FromConfig(cfg *config.Config, logger *zap.Logger) (*Model, error) {
	return Open(Options{Config: cfg, Logger: logger})
}

// Options select a preset model and, optionally, an already opened backend.
type Options struct {
	// Config names the preset and sizes its catalogue. Nil means defaults.
	Config *config.Config

	// Backend overrides the backend named in Config. The caller keeps
	// ownership only until the model is built; Model.Close releases it.
	Backend array.Backend

	Logger *zap.Logger
}

// Open builds the preset named by opts.Config.Model.
func Open(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	switch cfg.Model {
	case config.ModelFast:
		return build(fastPreset, cfg, opts.Backend, opts.Logger)
	case config.ModelSlow:
		return build(slowPreset, cfg, opts.Backend, opts.Logger)
	default:
		return nil, fmt.Errorf("%w: unknown model %q", errs.ErrConfiguration, cfg.Model)
	}
}

func build(ps preset, cfg *config.Config, b array.Backend, logger *zap.Logger) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	kind, err := cfg.BackendKind()
	if err != nil {
		return nil, err
	}
	if b != nil {
		kind = backend.KindCPU
		if b.Device().IsGPU() {
			kind = backend.KindWebGPU
		}
	}
	// Checked before opening, so a CPU-only model never touches the GPU.
	if kind == backend.KindWebGPU && !ps.gpuCapable {
		return nil, fmt.Errorf("%w: %s", ErrGPUUnsupported, ps.name)
	}

	tab, err := modes.New(cfg.Modes.LMax, cfg.Modes.NMax)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfiguration, err)
	}

	par := cfg.ParallelConfig()
	traj := trajectory.NewSparse(cfg.Trajectory.SparsePoints)
	if ps.dense {
		traj = trajectory.NewDense()
	}
	traj.StopBuffer = cfg.Trajectory.StopBuffer

	var sum summation.Summator = &summation.Direct{Parallel: par}
	if ps.interpolate {
		sum = &summation.Interpolated{Parallel: par}
	}

	if b == nil {
		if b, err = backend.Open(kind, par); err != nil {
			return nil, err
		}
	}
	logger.Info("waveform backend selected",
		zap.String("model", ps.name),
		zap.String("backend", b.Name()),
	)

	m, err := New(Modules{
		Trajectory: traj,
		Amplitude:  &amplitude.Harmonic{Parallel: par},
		Ylm:        ylm.NewSpinWeighted(),
		Summation:  sum,
		Modes:      tab,
	}, Config{
		Backend:       b,
		Normalize:     cfg.NormalizeAmplitudes,
		GPUCapable:    ps.gpuCapable,
		AllowBatching: ps.allowBatching,
		Logger:        logger.Named(ps.name),
	})
	if err != nil {
		b.Release()
		return nil, err
	}
	return m, nil
}
