// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row return errors instead of panicking.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//   - Convert to and from the layouts foreign callers use (row slices, flat row/col-major).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Row: O(1); ToRows/RowMajor/ColMajor: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxRow      = "Row"
	ctxFromRows = "FromRows"
	ctxFromCol  = "FromColMajor"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices:
// "Dense.<method>(row,col): %w".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: resolve options (numeric policy).
//   - Stage 3: allocate a zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// FromRows copies equal-length row slices into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions if there are no rows or the first row is empty.
//   - ErrDimensionMismatch if a row has a different length.
//   - ErrNaNInf if a value violates the numeric policy.
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, ErrInvalidDimensions)
	}
	m, err := NewDense(len(rows), len(rows[0]), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, err)
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxFromRows, i, len(row), m.c, ErrDimensionMismatch)
		}
		if m.validateNaNInf {
			for j, v := range row {
				if isNonFinite(v) {
					return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
				}
			}
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// FromColMajor builds a Dense from a flat column-major buffer
// (offset = j*rows + i), the layout MATLAB and Fortran callers use.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shapes.
//   - ErrDimensionMismatch if len(data) != rows*cols.
func FromColMajor(data []float64, rows, cols int, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromCol, err)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: %d values for %dx%d: %w", ctxFromCol, len(data), rows, cols, ErrDimensionMismatch)
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v := data[j*rows+i]
			if m.validateNaNInf && isNonFinite(v) {
				return nil, denseErrorf(ctxFromCol, i, j, ErrNaNInf)
			}
			m.data[i*cols+j] = v
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Concurrent Set calls on distinct cells are safe; the buffer is never
// reallocated after construction.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns row i as a slice aliasing the matrix storage.
// Writes through the slice bypass the numeric policy.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// ToRows copies the matrix into freshly allocated row slices.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// RowMajor returns a copy of the flat buffer in row-major order.
func (m *Dense) RowMajor() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// ColMajor returns a copy of the flat buffer in column-major order
// (offset = j*rows + i).
func (m *Dense) ColMajor() []float64 {
	out := make([]float64, len(m.data))
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			out[j*m.r+i] = m.data[base+j]
		}
	}

	return out
}

// String provides a readable row-wise dump for diagnostics.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v);
// returning false stops the walk.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
