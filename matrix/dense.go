// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (column-major) & safe accessors.
//
// Purpose:
//   - Store one DP matrix as a flat column-major buffer (offset j*rows + i) so
//     a recursor can take a whole column as a slice.
//   - Keep the public surface safe: At/Set return errors instead of panicking.
//   - Track the computed row range per column for banded fills.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// span is a half-open row range [begin, end).
type span struct {
	begin, end int
}

// Dense is a column-major matrix of log-domain scores.
//   - rows, cols hold dimensions.
//   - data is a flat buffer of length rows*cols (offset = j*rows + i).
//   - used[j] is the computed row range of column j; cells outside it are −∞.
type Dense struct {
	rows, cols int
	data       []float64
	used       []span
}

var (
	_ Columns      = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates a rows×cols matrix with every cell at −∞ and every used
// range empty.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrBadShape.
//   - Stage 2: allocate the flat buffer and fill it with −∞.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}
	data := make([]float64, rows*cols)
	negInf := math.Inf(-1)
	for k := range data {
		data[k] = negInf
	}

	return &Dense{rows: rows, cols: cols, data: data, used: make([]span, cols)}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.cols }

// indexOf computes the column-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, ErrOutOfRange
	}

	return col*m.rows + row, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) and grows the column's used range to include
// row. NaN is rejected; ±Inf are legal log-domain values.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) {
		return denseErrorf(ctxSet, row, col, ErrNaN)
	}
	m.data[off] = v
	u := &m.used[col]
	switch {
	case u.begin == u.end:
		u.begin, u.end = row, row+1
	case row < u.begin:
		u.begin = row
	case row >= u.end:
		u.end = row + 1
	}

	return nil
}

// Column returns column j as a slice aliasing the matrix storage, or nil
// when j is out of range. Writers must keep the used range in sync with
// SetUsedRange.
func (m *Dense) Column(j int) []float64 {
	if j < 0 || j >= m.cols {
		return nil
	}

	return m.data[j*m.rows : (j+1)*m.rows]
}

// UsedRange returns the computed row range [begin, end) of column j.
// Out-of-range columns report an empty range.
func (m *Dense) UsedRange(j int) (begin, end int) {
	if j < 0 || j >= m.cols {
		return 0, 0
	}

	return m.used[j].begin, m.used[j].end
}

// SetUsedRange records [begin, end) as the computed range of column j.
// The range is clipped to the matrix; out-of-range columns are ignored.
func (m *Dense) SetUsedRange(j, begin, end int) {
	if j < 0 || j >= m.cols {
		return
	}
	if begin < 0 {
		begin = 0
	}
	if end > m.rows {
		end = m.rows
	}
	if end < begin {
		end = begin
	}
	m.used[j] = span{begin: begin, end: end}
}

// ClearColumn resets the used cells of column j to −∞ and empties its range.
// Complexity: O(used rows).
func (m *Dense) ClearColumn(j int) {
	if j < 0 || j >= m.cols {
		return
	}
	col := m.Column(j)
	negInf := math.Inf(-1)
	for i := m.used[j].begin; i < m.used[j].end; i++ {
		col[i] = negInf
	}
	m.used[j] = span{}
}

// Reset clears every column.
func (m *Dense) Reset() {
	for j := 0; j < m.cols; j++ {
		m.ClearColumn(j)
	}
}

// UsedEntries counts the cells inside all used ranges.
func (m *Dense) UsedEntries() int {
	n := 0
	for _, u := range m.used {
		n += u.end - u.begin
	}

	return n
}

// Last returns the bottom-right cell.
func (m *Dense) Last() float64 { return m.data[len(m.data)-1] }

// Clone returns a deep copy.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	used := make([]span, len(m.used))
	copy(used, m.used)

	return &Dense{rows: m.rows, cols: m.cols, data: data, used: used}
}

// String renders the matrix row by row for debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[j*m.rows+i])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
