// SPDX-License-Identifier: MIT

// Package mutation describes single-site template edits and scores them.
//
// A Mutation is one of Insertion, Deletion, Substitution or Merge (two equal
// template bases collapsed into one). Scorer measures the change in one
// read's forward score; MultiReadScorer sums the change over every active
// read aligned to a shared template and commits accepted edits.
//
// Scoring is speculative: the live template and matrices are never touched,
// so any number of mutations may be scored concurrently.
package mutation
