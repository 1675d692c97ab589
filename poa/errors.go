// SPDX-License-Identifier: MIT

package poa

import (
	"errors"

	"github.com/katalvlaran/quiver/sequence"
)

var (
	// ErrEmptyInput is returned for an empty read set or a zero-length read.
	ErrEmptyInput = sequence.ErrEmptyInput

	// ErrNodeIndex indicates a node id outside the graph.
	ErrNodeIndex = errors.New("poa: node index out of range")

	// ErrParams flags alignment parameters with the wrong sign.
	ErrParams = errors.New("poa: invalid alignment parameters")

	// ErrCycle means the graph lost its acyclic invariant.
	ErrCycle = errors.New("poa: cycle detected")
)
