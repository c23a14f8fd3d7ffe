package array

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification and
// records how many times each operation was called.
type MockBackend struct {
	Calls    map[string]int
	released bool
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{Calls: make(map[string]int)}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Released reports whether Release was called.
func (m *MockBackend) Released() bool {
	return m.released
}

// Release marks the backend as released.
func (m *MockBackend) Release() {
	m.released = true
}

func (m *MockBackend) record(op string) {
	if m.released {
		panic(fmt.Sprintf("mock: %s on released backend", op))
	}
	m.Calls[op]++
}

// Stage copies x.
func (m *MockBackend) Stage(x []float64) []float64 {
	m.record("Stage")
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

// WeightedRowNorm computes sqrt(sum_j w[j]*|a[i,j]|^2) for each row.
func (m *MockBackend) WeightedRowNorm(a *Matrix, w []float64) []float64 {
	m.record("WeightedRowNorm")
	if len(w) != a.Cols {
		panic(fmt.Sprintf("mock: %d weights for %d columns", len(w), a.Cols))
	}
	out := make([]float64, a.Rows)
	for i := range out {
		var sum float64
		for j, v := range a.Row(i) {
			abs := cmplx.Abs(v)
			sum += w[j] * abs * abs
		}
		out[i] = math.Sqrt(sum)
	}
	return out
}

// ScaleRows multiplies row i by f[i].
func (m *MockBackend) ScaleRows(a *Matrix, f []float64) *Matrix {
	m.record("ScaleRows")
	if len(f) != a.Rows {
		panic(fmt.Sprintf("mock: %d factors for %d rows", len(f), a.Rows))
	}
	out := a.Clone()
	for i := 0; i < out.Rows; i++ {
		row := out.Row(i)
		for j := range row {
			row[j] *= complex(f[i], 0)
		}
	}
	return out
}

// TakeColumns gathers columns in idx order.
func (m *MockBackend) TakeColumns(a *Matrix, idx []int) *Matrix {
	m.record("TakeColumns")
	out := NewMatrix(a.Rows, len(idx))
	for i := 0; i < a.Rows; i++ {
		for k, j := range idx {
			out.Set(i, k, a.At(i, j))
		}
	}
	return out
}

// Take gathers v[idx[k]].
func (m *MockBackend) Take(v []complex128, idx []int) []complex128 {
	m.record("Take")
	out := make([]complex128, len(idx))
	for k, j := range idx {
		out[k] = v[j]
	}
	return out
}

// Concat joins parts in order.
func (m *MockBackend) Concat(parts ...[]complex128) []complex128 {
	m.record("Concat")
	var out []complex128
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
