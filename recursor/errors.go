// SPDX-License-Identifier: MIT

package recursor

import "errors"

var (
	// ErrShape is returned when a matrix does not have (read+1)×(template+1) cells.
	ErrShape = errors.New("recursor: matrix shape does not match read and template")

	// ErrColumnRange is returned for a fill range outside [0, len(template)].
	ErrColumnRange = errors.New("recursor: column range out of bounds")

	// ErrUnreachable is returned by Alignment when no path reaches the terminal cell.
	ErrUnreachable = errors.New("recursor: terminal cell unreachable")
)
