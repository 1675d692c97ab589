// SPDX-License-Identifier: MIT

package sequence

import "errors"

// Sentinel errors. Callers match them with errors.Is; constructors wrap them
// with position or length context where it helps.
var (
	// ErrEmptyInput is returned for zero-length reads or templates.
	ErrEmptyInput = errors.New("sequence: empty input")

	// ErrInvalidSymbol is returned when a byte is not one of A, C, G, T or '-'.
	ErrInvalidSymbol = errors.New("sequence: invalid symbol")

	// ErrOutOfRange indicates an index outside a container's bounds.
	ErrOutOfRange = errors.New("sequence: index out of range")

	// ErrLengthMismatch indicates a feature channel whose length differs
	// from the read it annotates.
	ErrLengthMismatch = errors.New("sequence: channel length mismatch")

	// ErrInvalidChannel is returned for intensity channel values outside 1..4.
	ErrInvalidChannel = errors.New("sequence: invalid channel value")

	// ErrUnknownVersion is returned by Arena for a version it never issued.
	ErrUnknownVersion = errors.New("sequence: unknown template version")
)
