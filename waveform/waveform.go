// Copyright 2025 The FastEMRIWaveforms Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package waveform generates extreme-mass-ratio inspiral waveforms.
//
// A Model turns the masses, initial orbit and viewing angles of an inspiral
// into the complex strain h+ - i hx sampled every dt seconds. Two preset
// models are provided:
//   - FastSchwarzschildEccentricFlux: sparse trajectory, spline-interpolated
//     mode sum, CPU or GPU backend.
//   - SlowSchwarzschildEccentricFlux: trajectory at the output cadence,
//     direct mode sum, CPU only, batching allowed.
//
// Example:
//
//	model, err := waveform.NewFastSchwarzschildEccentricFlux(waveform.DefaultConfig(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer model.Close()
//
//	p := waveform.DefaultParams()
//	p.M, p.Mu, p.P0, p.E0 = 1e6, 10, 10, 0.7
//	p.Theta, p.Phi = math.Pi/2, 0
//
//	res, err := model.Generate(p)
//	fmt.Println(len(res.Waveform), res.NumModesKept())
package waveform

import (
	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/config"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
	"github.com/KwintenF/FastEMRIWaveforms/internal/overlap"
	"github.com/KwintenF/FastEMRIWaveforms/internal/selection"
	"github.com/KwintenF/FastEMRIWaveforms/internal/trajectory"
	internalwaveform "github.com/KwintenF/FastEMRIWaveforms/internal/waveform"
	"go.uber.org/zap"
)

// Core types.
type (
	// Model generates waveforms on one backend.
	Model = internalwaveform.Model

	// Params are the inputs of one waveform call.
	Params = internalwaveform.Params

	// Result is the output of one waveform call.
	Result = internalwaveform.Result

	// Options select a preset and, optionally, an opened backend.
	Options = internalwaveform.Options

	// Config is the YAML model configuration.
	Config = config.Config

	// Backend is an array engine (see backend/cpu and backend/webgpu).
	Backend = array.Backend

	// Mode is one harmonic (l, m, n).
	Mode = modes.Mode

	// Selection chooses the retained modes: Default, All or explicit.
	Selection = selection.Policy

	// ValidationError describes a rejected physical input.
	ValidationError = errs.ValidationError
)

// Error classes, for use with errors.Is.
var (
	ErrConfiguration       = errs.ErrConfiguration
	ErrDomain              = errs.ErrDomain
	ErrLookup              = errs.ErrLookup
	ErrGPUUnsupported      = internalwaveform.ErrGPUUnsupported
	ErrBatchingUnsupported = internalwaveform.ErrBatchingUnsupported
)

// Physical constants.
const (
	YRSIDSI = trajectory.YRSIDSI
	MTSUNSI = trajectory.MTSUNSI
)

// DefaultParams returns dt = 10 s, T = 1 yr, eps = 1e-5, default selection
// and no batching.
func DefaultParams() Params {
	return internalwaveform.DefaultParams()
}

// DefaultConfig returns the default model configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a YAML configuration; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// New builds the preset named in opts.Config.
func New(opts Options) (*Model, error) {
	return internalwaveform.Open(opts)
}

// NewFastSchwarzschildEccentricFlux builds the fast preset.
func NewFastSchwarzschildEccentricFlux(cfg *Config, logger *zap.Logger) (*Model, error) {
	return internalwaveform.NewFastSchwarzschildEccentricFlux(cfg, logger)
}

// NewSlowSchwarzschildEccentricFlux builds the slow reference preset.
func NewSlowSchwarzschildEccentricFlux(cfg *Config, logger *zap.Logger) (*Model, error) {
	return internalwaveform.NewSlowSchwarzschildEccentricFlux(cfg, logger)
}

// SelectDefault keeps the modes carrying a fraction 1-eps of the power.
func SelectDefault() Selection {
	return selection.Default()
}

// SelectAll keeps every catalogued mode.
func SelectAll() Selection {
	return selection.All()
}

// SelectModes keeps exactly ms, in order.
func SelectModes(ms ...Mode) Selection {
	return selection.Explicit(ms...)
}

// ParseSelection accepts the string "all".
func ParseSelection(s string) (Selection, error) {
	return selection.Parse(s)
}

// Mismatch returns 1 minus the normalized overlap of two waveforms.
func Mismatch(a, b []complex128) (float64, error) {
	return overlap.Mismatch(a, b)
}
