// Package ylm evaluates the angular factors of the harmonic modes at the
// viewing angles of an observer.
package ylm

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Generator evaluates one angular factor per (l, m) pair.
type Generator interface {
	Generate(l, m []int, theta, phi float64) ([]complex128, error)
}

// SpinWeighted evaluates spin-weighted spherical harmonics of spin weight S:
//
//	sY_lm(theta, phi) = (-1)^s sqrt((2l+1)/4pi) d^l_{m,-s}(theta) e^{i m phi}
//
// where d is the Wigner small-d matrix.
type SpinWeighted struct {
	S int
}

// NewSpinWeighted returns the spin-weight -2 harmonics of gravitational
// radiation.
func NewSpinWeighted() *SpinWeighted {
	return &SpinWeighted{S: -2}
}

// Generate implements Generator.
func (g *SpinWeighted) Generate(l, m []int, theta, phi float64) ([]complex128, error) {
	if len(l) != len(m) {
		return nil, fmt.Errorf("ylm: %d l values but %d m values", len(l), len(m))
	}

	out := make([]complex128, len(l))
	for i := range l {
		if l[i] < abs(g.S) || abs(m[i]) > l[i] {
			return nil, fmt.Errorf("ylm: no spin-%d harmonic for (l, m) = (%d, %d)", g.S, l[i], m[i])
		}
		out[i] = g.eval(l[i], m[i], theta, phi)
	}
	return out, nil
}

func (g *SpinWeighted) eval(l, m int, theta, phi float64) complex128 {
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi))
	if g.S%2 != 0 {
		norm = -norm
	}
	d := wignerD(l, m, -g.S, theta)
	return cmplx.Rect(norm*d, float64(m)*phi)
}

// wignerD returns d^l_{mp,m}(beta) from the explicit factorial sum.
func wignerD(l, mp, m int, beta float64) float64 {
	c := math.Cos(beta / 2)
	s := math.Sin(beta / 2)
	pre := math.Sqrt(factorial(l+mp) * factorial(l-mp) * factorial(l+m) * factorial(l-m))

	kmin := max(0, m-mp)
	kmax := min(l+m, l-mp)

	var sum float64
	for k := kmin; k <= kmax; k++ {
		den := factorial(l+m-k) * factorial(k) * factorial(l-k-mp) * factorial(k-m+mp)
		term := pre / den * ipow(c, 2*l-2*k+m-mp) * ipow(s, 2*k-m+mp)
		if (k-m+mp)%2 != 0 {
			term = -term
		}
		sum += term
	}
	return sum
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// ipow raises x to a non-negative integer power; 0^0 is 1.
func ipow(x float64, n int) float64 {
	r := 1.0
	for ; n > 0; n-- {
		r *= x
	}
	return r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
