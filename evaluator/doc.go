// SPDX-License-Identifier: MIT

// Package evaluator binds one read to one template and keeps its forward
// matrix current.
//
// An Evaluator owns a live matrix for its template. Score reads the terminal
// cell; Recompute refreshes a column range after the owner edits the
// template through SetTemplate; ScoreTemplate scores a speculative template
// on a private suffix, so any number of speculative calls may run in
// parallel with each other (but not with SetTemplate).
package evaluator
