package array

import "fmt"

// Matrix is a dense row-major complex128 matrix. Rows index trajectory
// samples, columns index harmonic modes.
type Matrix struct {
	Rows int
	Cols int
	Data []complex128
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("array: invalid matrix shape %dx%d", rows, cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Data: make([]complex128, rows*cols)}
}

// FromRows builds a matrix from equal-length rows. The data is copied.
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("array: row %d has %d columns, want %d", i, len(r), cols)
		}
		copy(m.Data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols+j]
}

// Set sets element (i, j).
func (m *Matrix) Set(i, j int, v complex128) {
	m.Data[i*m.Cols+j] = v
}

// Row returns a view of row i.
//
// WARNING: Modifications to the returned slice modify the matrix.
func (m *Matrix) Row(i int) []complex128 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Column returns a copy of column j.
func (m *Matrix) Column(j int) []complex128 {
	out := make([]complex128, m.Rows)
	for i := range out {
		out[i] = m.Data[i*m.Cols+j]
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{Rows: m.Rows, Cols: m.Cols, Data: make([]complex128, len(m.Data))}
	copy(c.Data, m.Data)
	return c
}

// Validate checks that the backing slice matches the shape.
func (m *Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("array: invalid matrix shape %dx%d", m.Rows, m.Cols)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("array: matrix %dx%d backed by %d elements", m.Rows, m.Cols, len(m.Data))
	}
	return nil
}
