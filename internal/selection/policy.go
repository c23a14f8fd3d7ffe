// Package selection decides which harmonic modes contribute to a waveform.
//
// A Policy is a closed variant: Default (accuracy-budget filter driven by a
// Ranker), All (every catalogued mode) or Explicit (a caller-ordered list).
package selection

import (
	"fmt"
	"strings"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
)

// Selection errors. Both are configuration errors.
var (
	ErrInvalidSelection = fmt.Errorf("%w: mode selection string must be %q", errs.ErrConfiguration, "all")
	ErrEmptySelection   = fmt.Errorf("%w: explicit mode selection cannot be empty", errs.ErrConfiguration)
)

// Kind identifies the selection variant.
type Kind int

const (
	// KindDefault keeps the modes needed to reach a fractional power of 1-eps.
	KindDefault Kind = iota
	// KindAll keeps every mode of the catalogue.
	KindAll
	// KindExplicit keeps exactly the listed modes, in list order.
	KindExplicit
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindAll:
		return "all"
	case KindExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Policy is a mode selection request. The zero value is Default.
type Policy struct {
	kind  Kind
	modes []modes.Mode
}

// Default returns the accuracy-budget policy.
func Default() Policy {
	return Policy{kind: KindDefault}
}

// All returns the policy that keeps every mode.
func All() Policy {
	return Policy{kind: KindAll}
}

// Explicit returns the policy that keeps ms in the given order.
func Explicit(ms ...modes.Mode) Policy {
	list := make([]modes.Mode, len(ms))
	copy(list, ms)
	return Policy{kind: KindExplicit, modes: list}
}

// Parse maps a selection string to a policy. Only "all" is accepted; any
// other string is an error, never a fallback to Default.
func Parse(s string) (Policy, error) {
	if s == "all" {
		return All(), nil
	}
	return Policy{}, fmt.Errorf("%w: got %q", ErrInvalidSelection, s)
}

// Kind returns the variant.
func (p Policy) Kind() Kind {
	return p.kind
}

// Modes returns a copy of the explicit mode list.
func (p Policy) Modes() []modes.Mode {
	out := make([]modes.Mode, len(p.modes))
	copy(out, p.modes)
	return out
}

// Validate checks the policy before any computation runs.
func (p Policy) Validate() error {
	switch p.kind {
	case KindDefault, KindAll:
		return nil
	case KindExplicit:
		if len(p.modes) == 0 {
			return ErrEmptySelection
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown selection kind %d", errs.ErrConfiguration, int(p.kind))
	}
}

// String formats the policy.
func (p Policy) String() string {
	if p.kind != KindExplicit {
		return p.kind.String()
	}
	parts := make([]string, len(p.modes))
	for i, md := range p.modes {
		parts[i] = md.String()
	}
	return "explicit[" + strings.Join(parts, " ") + "]"
}
