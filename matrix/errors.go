// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinels are wrapped with the calling method and coordinates; match them
// with errors.Is.
var (
	// ErrBadShape is returned for a matrix with no rows or no columns.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange is returned by At, Set and the range accessors for a
	// cell or column outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaN is returned when NaN is stored. −∞ is a valid log score.
	ErrNaN = errors.New("matrix: NaN encountered")
)
