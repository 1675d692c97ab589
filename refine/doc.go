// SPDX-License-Identifier: MIT

// Package refine polishes a draft template against its reads.
//
// Refine runs rounds of mutation screening on a multi-read scorer: the first
// round tries every unique single-base mutation, later rounds only those
// near the previous round's favourable ones. Each round applies the best
// well-separated subset of favourable mutations (BestSubset) and stops once
// no mutation improves the summed score, or after MaxIterations rounds.
// Templates already visited are remembered so a round that would return to
// one applies only its single best mutation.
//
// ConsensusQVs converts the scores of all single-base alternatives at each
// position into a Phred quality.
//
// Rounds are logged at Debug level through a logrus.FieldLogger and counted
// in prometheus metrics registered with the default registry.
package refine
