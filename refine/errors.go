// SPDX-License-Identifier: MIT

package refine

import "errors"

var (
	// ErrNilScorer is returned when Refine or ConsensusQVs get no scorer.
	ErrNilScorer = errors.New("refine: nil scorer")

	// ErrProbability flags a probability outside [0,1].
	ErrProbability = errors.New("refine: probability out of [0,1]")
)
