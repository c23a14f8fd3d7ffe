// Package modes provides the catalogue of harmonic modes (l, m, n) retained by
// a waveform model, together with the index algebra of the m / -m symmetry.
//
// Only m >= 0 modes are stored: the m < 0 partner of every m > 0 mode is
// recovered by conjugation. Stored rows are ordered with all m = 0 entries
// first, then all m > 0 entries. The extended arrays returned by L, M and N
// append one m < 0 partner per m > 0 entry, so that
//
//	Len() = NumM0() + 2*NumMPos()
//	partner(i) = i + NumMPos()   for NumM0() <= i < NumStored()
package modes

import (
	"fmt"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
)

// ErrModeNotFound is returned when a mode is not part of the catalogue.
var ErrModeNotFound = fmt.Errorf("%w: mode not in catalogue", errs.ErrLookup)

// Mode is one harmonic (l, m, n).
type Mode struct {
	L int
	M int
	N int
}

// String formats the mode as (l,m,n).
func (md Mode) String() string {
	return fmt.Sprintf("(%d,%d,%d)", md.L, md.M, md.N)
}

// Valid reports whether the triple describes a physical harmonic.
func (md Mode) Valid() bool {
	return md.L >= 2 && md.M >= -md.L && md.M <= md.L
}

// LM is an (l, m) pair.
type LM struct {
	L int
	M int
}

// Table is the immutable mode catalogue of one physical model.
// It is safe for concurrent readers.
type Table struct {
	l, m, n   []int // extended arrays, Len() entries
	numM0     int
	numMPos   int
	index     map[Mode]int
	unique    []LM
	inverseLM []int
	weights   []float64
	positive  []bool
}

// New builds the catalogue l in [2, lmax], m in [0, l], n in [-nmax, nmax].
func New(lmax, nmax int) (*Table, error) {
	if lmax < 2 {
		return nil, fmt.Errorf("modes: lmax must be >= 2, got %d", lmax)
	}
	if nmax < 0 {
		return nil, fmt.Errorf("modes: nmax must be >= 0, got %d", nmax)
	}

	var list []Mode
	for l := 2; l <= lmax; l++ {
		for m := 0; m <= l; m++ {
			for n := -nmax; n <= nmax; n++ {
				list = append(list, Mode{L: l, M: m, N: n})
			}
		}
	}
	return FromList(list)
}

// FromList builds a catalogue from the stored (m >= 0) modes of a physical
// model. The relative order within the m = 0 and m > 0 groups is kept.
func FromList(list []Mode) (*Table, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("modes: empty mode list")
	}

	var zero, pos []Mode
	seen := make(map[Mode]struct{}, len(list))
	for _, md := range list {
		if !md.Valid() || md.M < 0 {
			return nil, fmt.Errorf("modes: invalid stored mode %v", md)
		}
		if _, dup := seen[md]; dup {
			return nil, fmt.Errorf("modes: duplicate mode %v", md)
		}
		seen[md] = struct{}{}
		if md.M == 0 {
			zero = append(zero, md)
		} else {
			pos = append(pos, md)
		}
	}

	t := &Table{
		numM0:   len(zero),
		numMPos: len(pos),
		index:   make(map[Mode]int, len(list)),
	}

	stored := append(append(make([]Mode, 0, len(list)), zero...), pos...)
	total := len(stored) + len(pos)
	t.l = make([]int, 0, total)
	t.m = make([]int, 0, total)
	t.n = make([]int, 0, total)
	for i, md := range stored {
		t.l = append(t.l, md.L)
		t.m = append(t.m, md.M)
		t.n = append(t.n, md.N)
		t.index[md] = i
	}
	for _, md := range pos {
		t.l = append(t.l, md.L)
		t.m = append(t.m, -md.M)
		t.n = append(t.n, md.N)
	}

	t.weights = make([]float64, len(stored))
	t.positive = make([]bool, len(stored))
	for i := range stored {
		t.weights[i] = 1
		if i >= t.numM0 {
			t.weights[i] = 2
			t.positive[i] = true
		}
	}

	t.buildUniqueLM()
	return t, nil
}

// buildUniqueLM collects unique (l, m) pairs over the extended arrays in
// first-seen order.
func (t *Table) buildUniqueLM() {
	pos := make(map[LM]int)
	t.inverseLM = make([]int, len(t.l))
	for i := range t.l {
		key := LM{L: t.l[i], M: t.m[i]}
		j, ok := pos[key]
		if !ok {
			j = len(t.unique)
			pos[key] = j
			t.unique = append(t.unique, key)
		}
		t.inverseLM[i] = j
	}
}

// Len returns the length of the extended (symmetry-expanded) arrays.
func (t *Table) Len() int { return len(t.l) }

// NumStored returns the number of stored (m >= 0) modes, i.e. the number of
// amplitude columns.
func (t *Table) NumStored() int { return t.numM0 + t.numMPos }

// NumM0 returns the number of stored m = 0 modes.
func (t *Table) NumM0() int { return t.numM0 }

// NumMPos returns the number of stored m > 0 modes.
func (t *Table) NumMPos() int { return t.numMPos }

// L returns the extended l array. Callers must not modify it.
func (t *Table) L() []int { return t.l }

// M returns the extended m array. Callers must not modify it.
func (t *Table) M() []int { return t.m }

// N returns the extended n array. Callers must not modify it.
func (t *Table) N() []int { return t.n }

// Stored returns the l, m, n arrays of the stored modes.
func (t *Table) Stored() (l, m, n []int) {
	k := t.NumStored()
	return t.l[:k], t.m[:k], t.n[:k]
}

// Mode returns the mode at extended row i.
func (t *Table) Mode(i int) Mode {
	return Mode{L: t.l[i], M: t.m[i], N: t.n[i]}
}

// PositiveMask marks stored rows with m > 0.
func (t *Table) PositiveMask() []bool { return t.positive }

// Weights returns the power weight of each stored row: 1 for m = 0 and 2 for
// m > 0, the latter accounting for the unstored m < 0 partner.
func (t *Table) Weights() []float64 { return t.weights }

// Lookup returns the stored row of md.
func (t *Table) Lookup(md Mode) (int, error) {
	i, ok := t.index[md]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrModeNotFound, md)
	}
	return i, nil
}

// UniqueLM returns the unique (l, m) pairs of the extended arrays.
func (t *Table) UniqueLM() []LM { return t.unique }

// InverseLM maps each extended row to its entry in UniqueLM.
func (t *Table) InverseLM() []int { return t.inverseLM }

// Partner returns the extended row holding the angular factor of the m / -m
// partner of stored row k. m = 0 rows are their own partner.
func (t *Table) Partner(k int) int {
	if k >= t.numM0 {
		return k + t.numMPos
	}
	return k
}

// Expand returns keep followed by the partner row of every entry of keep.
// The result has length 2*len(keep) and indexes the extended arrays.
func (t *Table) Expand(keep []int) []int {
	out := make([]int, 2*len(keep))
	copy(out, keep)
	for i, k := range keep {
		out[len(keep)+i] = t.Partner(k)
	}
	return out
}

// Select returns the stored modes at rows keep, in keep order.
func (t *Table) Select(keep []int) []Mode {
	out := make([]Mode, len(keep))
	for i, k := range keep {
		out[i] = t.Mode(k)
	}
	return out
}
