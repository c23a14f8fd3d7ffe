package selection

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
)

// Result holds the modes retained for one batch.
type Result struct {
	// Amplitudes of the retained modes, shape (samples, K).
	Amplitudes *array.Matrix

	// Angular factors of the retained modes followed by those of their
	// partners, length 2K.
	Angular []complex128

	// Keep holds the retained stored rows, in retention order.
	Keep []int

	// Modes holds the retained (l, m, n), aligned with Keep.
	Modes []modes.Mode
}

// Len returns K, the number of retained modes.
func (r *Result) Len() int {
	return len(r.Keep)
}

// L returns the retained l values.
func (r *Result) L() []int {
	return r.column(func(md modes.Mode) int { return md.L })
}

// M returns the retained m values.
func (r *Result) M() []int {
	return r.column(func(md modes.Mode) int { return md.M })
}

// N returns the retained n values.
func (r *Result) N() []int {
	return r.column(func(md modes.Mode) int { return md.N })
}

func (r *Result) column(f func(modes.Mode) int) []int {
	out := make([]int, len(r.Modes))
	for i, md := range r.Modes {
		out[i] = f(md)
	}
	return out
}

// Apply resolves p against the catalogue and gathers the retained amplitude
// columns and symmetry-expanded angular factors.
//
// amps has one column per stored mode; ylms has one entry per extended row of
// tab. eps is only read by the Default policy.
func Apply(b array.Backend, tab *modes.Table, ranker Ranker, p Policy, eps float64, amps *array.Matrix, ylms []complex128) (*Result, error) {
	if amps.Cols != tab.NumStored() {
		return nil, fmt.Errorf("selection: %d amplitude columns for %d stored modes", amps.Cols, tab.NumStored())
	}
	if len(ylms) != tab.Len() {
		return nil, fmt.Errorf("selection: %d angular factors for %d catalogue rows", len(ylms), tab.Len())
	}

	var keep []int
	switch p.Kind() {
	case KindDefault:
		if ranker == nil {
			return nil, fmt.Errorf("selection: default policy needs a ranker")
		}
		k, err := ranker.Keep(amps, ylms, tab, eps)
		if err != nil {
			return nil, fmt.Errorf("selection: rank modes: %w", err)
		}
		keep = k

	case KindAll:
		keep = make([]int, tab.NumStored())
		for i := range keep {
			keep[i] = i
		}

	case KindExplicit:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		keep = make([]int, len(p.modes))
		for i, md := range p.modes {
			row, err := tab.Lookup(md)
			if err != nil {
				return nil, fmt.Errorf("selection: %w", err)
			}
			keep[i] = row
		}

	default:
		return nil, p.Validate()
	}

	// All keeps every column in catalogue order, so the gather is skipped.
	selected := amps
	if p.Kind() != KindAll {
		selected = b.TakeColumns(amps, keep)
	}

	return &Result{
		Amplitudes: selected,
		Angular:    b.Take(ylms, tab.Expand(keep)),
		Keep:       keep,
		Modes:      tab.Select(keep),
	}, nil
}
