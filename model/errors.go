// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks malformed parameters, banding or move sets.
	ErrConfiguration = errors.New("model: invalid configuration")

	// ErrBandCoverage is returned when the band cannot contain the alignment
	// between a read and a template of the given lengths.
	ErrBandCoverage = errors.New("model: alignment falls outside the band")

	// ErrUnknownChemistry is returned by ConfigTable.At when neither the
	// requested chemistry nor a default entry exists. It wraps ErrConfiguration.
	ErrUnknownChemistry = fmt.Errorf("%w: unknown chemistry", ErrConfiguration)
)
