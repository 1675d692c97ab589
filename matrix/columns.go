// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Columns is the column-oriented view a recursor fills and reads.
//
// Column(j) may alias storage; callers write only columns they own.
type Columns interface {
	Rows() int
	Cols() int
	Column(j int) []float64
	UsedRange(j int) (begin, end int)
	SetUsedRange(j, begin, end int)
	ClearColumn(j int)
}

// Overlay presents columns [0, split) of a base matrix followed by private
// columns [split, cols). Writes to the prefix are ignored.
type Overlay struct {
	base    Columns
	split   int
	cols    int
	scratch *Dense
}

var _ Columns = (*Overlay)(nil)

// NewOverlay builds an overlay of cols columns sharing the first split
// columns of base.
//
// Errors:
//   - ErrOutOfRange when split is negative, exceeds base.Cols() or is not
//     smaller than cols.
func NewOverlay(base Columns, split, cols int) (*Overlay, error) {
	if split < 0 || split > base.Cols() || split >= cols {
		return nil, fmt.Errorf("NewOverlay(split=%d, cols=%d, base cols=%d): %w",
			split, cols, base.Cols(), ErrOutOfRange)
	}
	scratch, err := NewDense(base.Rows(), cols-split)
	if err != nil {
		return nil, err
	}

	return &Overlay{base: base, split: split, cols: cols, scratch: scratch}, nil
}

// Split returns the first private column.
func (o *Overlay) Split() int { return o.split }

// Rows returns the row count shared with the base.
func (o *Overlay) Rows() int { return o.base.Rows() }

// Cols returns the overlay width.
func (o *Overlay) Cols() int { return o.cols }

// Column returns a base column below the split, a private column otherwise.
func (o *Overlay) Column(j int) []float64 {
	if j < 0 || j >= o.cols {
		return nil
	}
	if j < o.split {
		return o.base.Column(j)
	}

	return o.scratch.Column(j - o.split)
}

// UsedRange reports the range of the column that Column(j) returns.
func (o *Overlay) UsedRange(j int) (begin, end int) {
	if j < 0 || j >= o.cols {
		return 0, 0
	}
	if j < o.split {
		return o.base.UsedRange(j)
	}

	return o.scratch.UsedRange(j - o.split)
}

// SetUsedRange updates a private column; prefix columns are left alone.
func (o *Overlay) SetUsedRange(j, begin, end int) {
	if j >= o.split {
		o.scratch.SetUsedRange(j-o.split, begin, end)
	}
}

// ClearColumn clears a private column; prefix columns are left alone.
func (o *Overlay) ClearColumn(j int) {
	if j >= o.split {
		o.scratch.ClearColumn(j - o.split)
	}
}

// At reads any cell through the overlay.
func (o *Overlay) At(row, col int) (float64, error) {
	c := o.Column(col)
	if c == nil || row < 0 || row >= len(c) {
		return 0, fmt.Errorf("Overlay.At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return c[row], nil
}

// Last returns the bottom-right cell, or −∞ for a degenerate overlay.
func (o *Overlay) Last() float64 {
	c := o.Column(o.cols - 1)
	if len(c) == 0 {
		return math.Inf(-1)
	}

	return c[len(c)-1]
}
