// Package backend selects the array engine a waveform model is bound to.
package backend

import (
	"fmt"
	"strings"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/backend/cpu"
	"github.com/KwintenF/FastEMRIWaveforms/internal/backend/webgpu"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/parallel"
)

// Kind names an array engine.
type Kind string

// Supported engines.
const (
	KindCPU    Kind = "cpu"
	KindWebGPU Kind = "webgpu"
)

// ParseKind parses an engine name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCPU, KindWebGPU:
		return k, nil
	case "gpu":
		return KindWebGPU, nil
	default:
		return "", fmt.Errorf("%w: unknown backend %q (want %q or %q)", errs.ErrConfiguration, s, KindCPU, KindWebGPU)
	}
}

// Open creates the engine for kind. A GPU request on a host without a usable
// GPU is a configuration error; there is no silent fallback to the CPU.
func Open(kind Kind, par parallel.Config) (array.Backend, error) {
	switch kind {
	case KindCPU:
		return cpu.NewWithConfig(par), nil
	case KindWebGPU:
		e, err := webgpu.New()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrConfiguration, err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", errs.ErrConfiguration, kind)
	}
}

// GPUAvailable reports whether a GPU engine can be opened on this host.
func GPUAvailable() bool {
	return webgpu.IsAvailable()
}
