package trajectory

import (
	"math"
	"testing"

	"github.com/KwintenF/FastEMRIWaveforms/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluxInspiral_DenseCadence(t *testing.T) {
	opts := Options{T: 9995 / YRSIDSI, Dt: 10}
	tr, err := NewDense().Generate(1e6, 10, 10, 0.7, opts)
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	assert.Equal(t, 1000, tr.Len())
	for i, ti := range tr.T {
		assert.InDelta(t, float64(i)*10, ti, 1e-9)
	}
	// Radiation reaction shrinks the orbit and circularizes it.
	assert.Less(t, tr.P[tr.Len()-1], tr.P[0])
	assert.Less(t, tr.E[tr.Len()-1], tr.E[0])
	assert.Greater(t, tr.PhiPhi[tr.Len()-1], tr.PhiR[tr.Len()-1])
}

func TestFluxInspiral_SparseReachesPlunge(t *testing.T) {
	tr, err := NewSparse(100).Generate(1e6, 10, 7.5, 0.1, Options{T: 1, Dt: 10})
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	n := tr.Len()
	assert.Greater(t, n, 10)
	assert.Less(t, tr.End(), YRSIDSI)

	// Stopped by the separatrix, just outside the buffer.
	gap := tr.P[n-1] - Separatrix(tr.E[n-1])
	assert.GreaterOrEqual(t, gap, DefaultStopBuffer)
	assert.Less(t, gap, 1.1*DefaultStopBuffer)
}

func TestFluxInspiral_SparseWideOrbitSurvivesYear(t *testing.T) {
	tr, err := NewSparse(100).Generate(1e6, 10, 10, 0.7, Options{T: 1, Dt: 10})
	require.NoError(t, err)

	assert.Equal(t, 101, tr.Len())
	assert.Equal(t, YRSIDSI, tr.End())
}

func TestFluxInspiral_SparseStopsAtDuration(t *testing.T) {
	// A wide orbit barely evolves over a day.
	opts := Options{T: 86400 / YRSIDSI, Dt: 10}
	tr, err := NewSparse(20).Generate(1e6, 10, 20, 0.2, opts)
	require.NoError(t, err)

	assert.Equal(t, 21, tr.Len())
	assert.Equal(t, opts.Seconds(), tr.End())
}

func TestFluxInspiral_CircularStaysCircular(t *testing.T) {
	tr, err := NewSparse(10).Generate(1e5, 1, 12, 0, Options{T: 0.01, Dt: 10})
	require.NoError(t, err)
	for _, e := range tr.E {
		assert.Zero(t, e)
	}
}

func TestFluxInspiral_RejectsInputs(t *testing.T) {
	gen := NewSparse(10)
	opts := Options{T: 1, Dt: 10}

	tests := []struct {
		name          string
		M, mu, p0, e0 float64
		opts          Options
	}{
		{"zero mass", 0, 10, 10, 0.1, opts},
		{"negative mu", 1e6, -1, 10, 0.1, opts},
		{"unbound", 1e6, 10, 10, 1, opts},
		{"inside separatrix", 1e6, 10, 6.5, 0.5, opts},
		{"zero duration", 1e6, 10, 10, 0.1, Options{T: 0, Dt: 10}},
		{"nan cadence", 1e6, 10, 10, 0.1, Options{T: 1, Dt: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.M, tt.mu, tt.p0, tt.e0, tt.opts)
			assert.ErrorIs(t, err, errs.ErrDomain)
		})
	}
}

func TestTrajectory_Validate(t *testing.T) {
	good := func() *Trajectory {
		return &Trajectory{
			T:       []float64{0, 1, 2},
			P:       []float64{10, 9.9, 9.8},
			E:       []float64{0.3, 0.3, 0.29},
			PhiPhi:  []float64{0, 0.1, 0.2},
			PhiR:    []float64{0, 0.1, 0.2},
			AmpNorm: []float64{1, 1, 1},
		}
	}
	require.NoError(t, good().Validate())

	tests := []struct {
		name   string
		mutate func(*Trajectory)
		field  string
	}{
		{"non-monotonic time", func(tr *Trajectory) { tr.T[2] = 1 }, "t"},
		{"negative p", func(tr *Trajectory) { tr.P[1] = -1 }, "p"},
		{"negative e", func(tr *Trajectory) { tr.E[0] = -0.1 }, "e"},
		{"nan phase", func(tr *Trajectory) { tr.PhiR[1] = math.NaN() }, "Phi_r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := good()
			tt.mutate(tr)
			err := tr.Validate()
			require.ErrorIs(t, err, errs.ErrDomain)
			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	tr := good()
	tr.E = tr.E[:2]
	assert.ErrorIs(t, tr.Validate(), errs.ErrDomain)
	assert.ErrorIs(t, (&Trajectory{}).Validate(), errs.ErrDomain)
}

func TestFrequencies(t *testing.T) {
	omegaPhi, omegaR := Frequencies(10, 0)
	assert.InDelta(t, math.Pow(10, -1.5), omegaR, 1e-15)
	assert.InDelta(t, omegaR*1.3, omegaPhi, 1e-15)
	assert.Greater(t, AmpNorm(8, 0.5), AmpNorm(10, 0.5))
}
