// SPDX-License-Identifier: MIT

package recursor

import "math"

// Combiner merges the scores of alternative transitions into one cell.
type Combiner uint8

const (
	// SumProduct adds probabilities (log-sum-exp): the forward algorithm.
	SumProduct Combiner = iota
	// Viterbi keeps the best transition (max).
	Viterbi
)

// String implements fmt.Stringer.
func (c Combiner) String() string {
	switch c {
	case SumProduct:
		return "SumProduct"
	case Viterbi:
		return "Viterbi"
	default:
		return "Combiner(?)"
	}
}

// Combine merges two log-domain scores.
func (c Combiner) Combine(a, b float64) float64 {
	if c == Viterbi {
		return math.Max(a, b)
	}

	return LogAdd(a, b)
}

// LogAdd returns log(exp(a) + exp(b)) without overflow. −∞ is the identity.
func LogAdd(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}

	return a + math.Log1p(math.Exp(b-a))
}
