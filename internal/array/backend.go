// Package array provides the array types and the compute backend contract used
// by the waveform pipeline.
package array

// Backend defines the interface that all array engines must implement.
// The pipeline runs the same algorithms on every engine; only the place where
// the numbers live changes.
//
// Implementations:
//   - CPU: pure Go with SIMD kernels from algo-vecmath
//   - WebGPU: gathers run as WGSL compute kernels
type Backend interface {
	// Stage copies a host series onto the backend.
	Stage(x []float64) []float64

	// Reductions
	WeightedRowNorm(a *Matrix, w []float64) []float64 // sqrt(sum_j w[j]*|a[i,j]|^2) per row

	// Element-wise
	ScaleRows(a *Matrix, f []float64) *Matrix // row i multiplied by f[i], new matrix

	// Indexing
	TakeColumns(a *Matrix, idx []int) *Matrix    // columns idx, in idx order
	Take(v []complex128, idx []int) []complex128 // v[idx[k]]
	Concat(parts ...[]complex128) []complex128   // parts joined in order

	// Metadata
	Name() string
	Device() Device

	// Release frees device resources. The backend must not be used afterwards.
	Release()
}
