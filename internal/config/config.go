// Package config holds the YAML configuration of a waveform model.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/KwintenF/FastEMRIWaveforms/internal/backend"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
	"gopkg.in/yaml.v3"
)

// Model presets.
const (
	ModelFast = "fast"
	ModelSlow = "slow"
)

// Config holds all model configuration.
type Config struct {
	// Preset: "fast" (sparse trajectory, interpolated sum) or "slow"
	// (dense trajectory, direct sum).
	Model string `yaml:"model"`

	// Array backend: "cpu" or "webgpu".
	Backend string `yaml:"backend"`

	// Rescale mode amplitudes to the trajectory flux normalization.
	NormalizeAmplitudes bool `yaml:"normalize_amplitudes"`

	Modes      ModesConfig      `yaml:"modes"`
	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ModesConfig bounds the mode catalogue.
type ModesConfig struct {
	LMax int `yaml:"lmax"`
	NMax int `yaml:"nmax"`
}

// TrajectoryConfig configures the reference inspiral.
type TrajectoryConfig struct {
	SparsePoints int     `yaml:"sparse_points"` // steps of the sparse trajectory
	StopBuffer   float64 `yaml:"stop_buffer"`   // distance to the separatrix at which to stop
}

// ParallelConfig configures the CPU row loops.
type ParallelConfig struct {
	Enabled bool `yaml:"enabled"`
	Workers int  `yaml:"workers"` // 0 = number of CPUs
	MinRows int  `yaml:"min_rows"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:               ModelFast,
		Backend:             string(backend.KindCPU),
		NormalizeAmplitudes: true,
		Modes: ModesConfig{
			LMax: 10,
			NMax: 30,
		},
		Trajectory: TrajectoryConfig{
			SparsePoints: 100,
			StopBuffer:   0.1,
		},
		Parallel: ParallelConfig{
			Enabled: true,
			MinRows: 256,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if b := os.Getenv("FEW_BACKEND"); b != "" {
		c.Backend = b
	}
	if level := os.Getenv("FEW_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration. Every failure is a configuration error.
func (c *Config) Validate() error {
	if c.Model != ModelFast && c.Model != ModelSlow {
		return fmt.Errorf("%w: invalid model %q (valid: %s, %s)", errs.ErrConfiguration, c.Model, ModelFast, ModelSlow)
	}
	if _, err := backend.ParseKind(c.Backend); err != nil {
		return err
	}
	if c.Modes.LMax < 2 {
		return fmt.Errorf("%w: modes.lmax must be >= 2, got %d", errs.ErrConfiguration, c.Modes.LMax)
	}
	if c.Modes.NMax < 0 {
		return fmt.Errorf("%w: modes.nmax must be >= 0, got %d", errs.ErrConfiguration, c.Modes.NMax)
	}
	if c.Trajectory.SparsePoints < 2 {
		return fmt.Errorf("%w: trajectory.sparse_points must be >= 2, got %d", errs.ErrConfiguration, c.Trajectory.SparsePoints)
	}
	if c.Trajectory.StopBuffer < 0 {
		return fmt.Errorf("%w: trajectory.stop_buffer must be >= 0, got %g", errs.ErrConfiguration, c.Trajectory.StopBuffer)
	}
	if c.Parallel.Workers < 0 || c.Parallel.MinRows < 0 {
		return fmt.Errorf("%w: parallel.workers and parallel.min_rows must be >= 0", errs.ErrConfiguration)
	}
	return nil
}

// BackendKind returns the parsed backend kind.
func (c *Config) BackendKind() (backend.Kind, error) {
	return backend.ParseKind(c.Backend)
}

// ParallelConfig converts the parallel section for the CPU row loops.
func (c *Config) ParallelConfig() parallel.Config {
	if !c.Parallel.Enabled {
		return parallel.Sequential()
	}
	workers := c.Parallel.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return parallel.Config{
		Enabled:    workers > 1,
		NumWorkers: workers,
		MinRows:    max(c.Parallel.MinRows, 1),
	}
}
