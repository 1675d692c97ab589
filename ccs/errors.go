// SPDX-License-Identifier: MIT

package ccs

import "errors"

var (
	// ErrTooFewReads is returned for groups below MinReads, or with fewer
	// active reads than that after band checks.
	ErrTooFewReads = errors.New("ccs: too few reads")

	// ErrFormat is returned for an unknown input format name.
	ErrFormat = errors.New("ccs: unknown read format")
)
