package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KwintenF/FastEMRIWaveforms/internal/backend"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ModelFast, cfg.Model)
	assert.True(t, cfg.NormalizeAmplitudes)
	assert.Equal(t, 10, cfg.Modes.LMax)
	assert.Equal(t, 30, cfg.Modes.NMax)

	kind, err := cfg.BackendKind()
	require.NoError(t, err)
	assert.Equal(t, backend.KindCPU, kind)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("FEW_BACKEND", "")
	t.Setenv("FEW_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFile(t *testing.T) {
	t.Setenv("FEW_BACKEND", "")
	t.Setenv("FEW_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "few.yaml")
	data := "model: slow\nmodes:\n  lmax: 4\n  nmax: 5\nnormalize_amplitudes: false\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModelSlow, cfg.Model)
	assert.Equal(t, ModesConfig{LMax: 4, NMax: 5}, cfg.Modes)
	assert.False(t, cfg.NormalizeAmplitudes)
	// Unset sections keep their defaults.
	assert.Equal(t, 100, cfg.Trajectory.SparsePoints)
	assert.Equal(t, "cpu", cfg.Backend)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modes: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("FEW_BACKEND", "")
	t.Setenv("FEW_LOG_LEVEL", "")

	cfg := DefaultConfig()
	cfg.Model = ModelSlow
	cfg.Trajectory.StopBuffer = 0.25

	path := filepath.Join(t.TempDir(), "nested", "few.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FEW_BACKEND", "webgpu")
	t.Setenv("FEW_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "webgpu", cfg.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown model", func(c *Config) { c.Model = "medium" }},
		{"unknown backend", func(c *Config) { c.Backend = "tpu" }},
		{"lmax too small", func(c *Config) { c.Modes.LMax = 1 }},
		{"negative nmax", func(c *Config) { c.Modes.NMax = -1 }},
		{"too few sparse points", func(c *Config) { c.Trajectory.SparsePoints = 1 }},
		{"negative buffer", func(c *Config) { c.Trajectory.StopBuffer = -0.1 }},
		{"negative workers", func(c *Config) { c.Parallel.Workers = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), errs.ErrConfiguration)
		})
	}
}

func TestParallelConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parallel = ParallelConfig{Enabled: true, Workers: 3, MinRows: 0}
	p := cfg.ParallelConfig()
	assert.True(t, p.Enabled)
	assert.Equal(t, 3, p.NumWorkers)
	assert.Equal(t, 1, p.MinRows)

	cfg.Parallel.Enabled = false
	assert.False(t, cfg.ParallelConfig().Enabled)
}
