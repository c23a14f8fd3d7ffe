package selection

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/KwintenF/FastEMRIWaveforms/internal/array"
	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/KwintenF/FastEMRIWaveforms/internal/modes"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) (*modes.Table, *array.Matrix, []complex128) {
	t.Helper()
	tab, err := modes.New(3, 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	amps := array.NewMatrix(20, tab.NumStored())
	for i := range amps.Data {
		// Spread magnitudes over several decades so the budget matters.
		scale := 1 / float64(1+i%tab.NumStored())
		amps.Data[i] = complex(rng.NormFloat64()*scale, rng.NormFloat64()*scale)
	}
	ylms := make([]complex128, tab.Len())
	for i := range ylms {
		ylms[i] = complex(rng.Float64()+0.1, rng.Float64()-0.5)
	}
	return tab, amps, ylms
}

func TestParse(t *testing.T) {
	p, err := Parse("all")
	require.NoError(t, err)
	assert.Equal(t, KindAll, p.Kind())

	_, err = Parse("banana")
	require.ErrorIs(t, err, ErrInvalidSelection)
	assert.ErrorIs(t, err, errs.ErrConfiguration)

	_, err = Parse("")
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.NoError(t, All().Validate())
	assert.NoError(t, Explicit(modes.Mode{L: 2, M: 2, N: 0}).Validate())

	err := Explicit().Validate()
	require.ErrorIs(t, err, ErrEmptySelection)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "default", Policy{}.String())
	assert.Equal(t, "all", All().String())
	assert.Equal(t, "explicit[(2,2,0) (3,1,-1)]",
		Explicit(modes.Mode{L: 2, M: 2, N: 0}, modes.Mode{L: 3, M: 1, N: -1}).String())
}

func TestApply_All(t *testing.T) {
	tab, amps, ylms := fixture(t)
	b := array.NewMockBackend()

	res, err := Apply(b, tab, nil, All(), 0, amps, ylms)
	require.NoError(t, err)

	assert.Equal(t, tab.NumStored(), res.Len())
	assert.Same(t, amps, res.Amplitudes)
	assert.Len(t, res.Angular, 2*tab.NumStored())
	assert.Zero(t, b.Calls["TakeColumns"])
	for i := range res.Keep {
		assert.Equal(t, i, res.Keep[i])
		assert.Equal(t, tab.Mode(i), res.Modes[i])
	}
}

func TestApply_ExplicitPreservesOrder(t *testing.T) {
	tab, amps, ylms := fixture(t)
	b := array.NewMockBackend()

	want := []modes.Mode{
		{L: 3, M: 2, N: 1},
		{L: 2, M: 0, N: 0},
		{L: 2, M: 2, N: -2},
	}
	res, err := Apply(b, tab, nil, Explicit(want...), 0, amps, ylms)
	require.NoError(t, err)

	if diff := cmp.Diff(want, res.Modes); diff != "" {
		t.Errorf("retained modes mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{3, 2, 2}, res.L())
	assert.Equal(t, []int{2, 0, 2}, res.M())
	assert.Equal(t, []int{1, 0, -2}, res.N())

	for k, row := range res.Keep {
		assert.Equal(t, amps.Column(row), res.Amplitudes.Column(k))
	}
}

func TestApply_ExplicitUnknownMode(t *testing.T) {
	tab, amps, ylms := fixture(t)

	_, err := Apply(array.NewMockBackend(), tab, nil,
		Explicit(modes.Mode{L: 9, M: 9, N: 9}), 0, amps, ylms)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrLookup)

	_, err = Apply(array.NewMockBackend(), tab, nil, Explicit(), 0, amps, ylms)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestApply_AngularSymmetry(t *testing.T) {
	tab, amps, ylms := fixture(t)

	res, err := Apply(array.NewMockBackend(), tab, NewPowerRanker(), Default(), 1e-3, amps, ylms)
	require.NoError(t, err)
	require.NotZero(t, res.Len())

	k := res.Len()
	require.Len(t, res.Angular, 2*k)
	for i, row := range res.Keep {
		assert.Equal(t, ylms[row], res.Angular[i])
		assert.Equal(t, ylms[tab.Partner(row)], res.Angular[k+i])
		if row < tab.NumM0() {
			// m = 0 modes are their own partner.
			assert.Equal(t, res.Angular[i], res.Angular[k+i])
		}
	}
}

func TestApply_ShapeErrors(t *testing.T) {
	tab, amps, ylms := fixture(t)
	b := array.NewMockBackend()

	_, err := Apply(b, tab, nil, All(), 0, array.NewMatrix(2, 3), ylms)
	assert.Error(t, err)
	_, err = Apply(b, tab, nil, All(), 0, amps, ylms[:3])
	assert.Error(t, err)
	_, err = Apply(b, tab, nil, Default(), 1e-5, amps, ylms)
	assert.Error(t, err)
}

func TestPowerRanker_Monotone(t *testing.T) {
	tab, amps, ylms := fixture(t)
	r := NewPowerRanker()

	prev := map[int]bool{}
	for _, eps := range []float64{0.5, 1e-1, 1e-2, 1e-4, 1e-8} {
		keep, err := r.Keep(amps, ylms, tab, eps)
		require.NoError(t, err)
		got := map[int]bool{}
		for _, k := range keep {
			got[k] = true
		}
		for k := range prev {
			assert.True(t, got[k], "eps=%g dropped row %d", eps, k)
		}
		prev = got
	}
}

func TestPowerRanker_DominantMode(t *testing.T) {
	tab, err := modes.New(2, 0)
	require.NoError(t, err)

	// Stored rows: (2,0,0), (2,1,0), (2,2,0). Only (2,2,0) carries power.
	amps := array.NewMatrix(4, tab.NumStored())
	for i := 0; i < amps.Rows; i++ {
		amps.Set(i, 0, 1e-6)
		amps.Set(i, 1, 1e-6)
		amps.Set(i, 2, cmplx.Rect(1, float64(i)))
	}
	ylms := make([]complex128, tab.Len())
	for i := range ylms {
		ylms[i] = 1
	}

	keep, err := NewPowerRanker().Keep(amps, ylms, tab, 1e-5)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, keep)

	// A budget of zero keeps everything with nonzero power.
	keep, err = NewPowerRanker().Keep(amps, ylms, tab, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, keep)
}

func TestPowerRanker_PartnerFoldsBack(t *testing.T) {
	tab, err := modes.New(2, 0)
	require.NoError(t, err)

	amps := array.NewMatrix(1, tab.NumStored())
	amps.Set(0, 1, 1)
	ylms := make([]complex128, tab.Len())
	// Only the m=-1 partner of (2,1,0) sees a nonzero angular factor.
	ylms[tab.Partner(1)] = 1

	keep, err := NewPowerRanker().Keep(amps, ylms, tab, 1e-5)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, keep)
}
