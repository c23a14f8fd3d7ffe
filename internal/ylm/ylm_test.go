package ylm

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinWeighted_ClosedForms(t *testing.T) {
	g := NewSpinWeighted()
	angles := [][2]float64{{0.3, 0.1}, {math.Pi / 2, 0}, {2.5, 4.0}, {math.Pi, 1.2}}

	for _, a := range angles {
		theta, phi := a[0], a[1]
		got, err := g.Generate([]int{2, 2, 2}, []int{2, -2, 0}, theta, phi)
		require.NoError(t, err)

		c := math.Cos(theta)
		want22 := math.Sqrt(5/(64*math.Pi)) * (1 + c) * (1 + c)
		want2m2 := math.Sqrt(5/(64*math.Pi)) * (1 - c) * (1 - c)
		want20 := math.Sqrt(15/(32*math.Pi)) * math.Sin(theta) * math.Sin(theta)

		assert.InDelta(t, 0, cmplx.Abs(got[0]-cmplx.Rect(want22, 2*phi)), 1e-14)
		assert.InDelta(t, 0, cmplx.Abs(got[1]-cmplx.Rect(want2m2, -2*phi)), 1e-14)
		assert.InDelta(t, 0, cmplx.Abs(got[2]-complex(want20, 0)), 1e-14)
	}
}

func TestSpinWeighted_Normalization(t *testing.T) {
	// Integral of |Y|^2 over the sphere is 1; the phi integral is 2pi.
	g := NewSpinWeighted()
	const steps = 2000
	for _, lm := range [][2]int{{2, 1}, {3, -2}, {4, 4}, {5, 0}} {
		var sum float64
		h := math.Pi / steps
		for i := 0; i < steps; i++ {
			theta := (float64(i) + 0.5) * h
			y, err := g.Generate([]int{lm[0]}, []int{lm[1]}, theta, 0)
			require.NoError(t, err)
			a := cmplx.Abs(y[0])
			sum += a * a * math.Sin(theta) * h
		}
		assert.InDelta(t, 1, 2*math.Pi*sum, 1e-5, "(l,m) = %v", lm)
	}
}

func TestSpinWeighted_Errors(t *testing.T) {
	g := NewSpinWeighted()
	_, err := g.Generate([]int{2}, []int{3}, 1, 0)
	assert.Error(t, err)
	_, err = g.Generate([]int{1}, []int{0}, 1, 0)
	assert.Error(t, err)
	_, err = g.Generate([]int{2, 3}, []int{0}, 1, 0)
	assert.Error(t, err)
}
