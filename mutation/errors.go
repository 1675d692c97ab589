// SPDX-License-Identifier: MIT

package mutation

import "errors"

var (
	// ErrIndexOutOfRange is returned for a mutation position outside the template.
	ErrIndexOutOfRange = errors.New("mutation: position out of range")

	// ErrInvalidMutation is returned for an unknown kind or a non-base symbol.
	ErrInvalidMutation = errors.New("mutation: invalid mutation")

	// ErrReadIndex is returned for a read index outside a MultiReadScorer.
	ErrReadIndex = errors.New("mutation: read index out of range")
)
