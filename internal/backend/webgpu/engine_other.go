//go:build !windows

// Package webgpu implements the WebGPU array engine.
// The native WebGPU bindings are only wired for windows builds; elsewhere the
// engine reports itself unavailable.
package webgpu

import (
	"errors"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
)

// ErrUnavailable is returned by New on platforms without WebGPU bindings.
var ErrUnavailable = errors.New("webgpu: not available on this platform")

// Engine is the WebGPU array engine. It cannot be constructed on this platform.
type Engine struct {
	array.Backend
}

// New always fails on this platform.
func New() (*Engine, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}
