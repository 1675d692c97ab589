// SPDX-License-Identifier: MIT

// Package model holds the read-only configuration shared by every
// evaluator: the permitted move set, the banding policy, the emission
// parameters and the per-chemistry configuration table.
//
// All values here are constructed once and then shared across goroutines.
// Nothing in the package renormalises parameters: QV-model values are taken
// as log-probabilities exactly as supplied.
//
// Quick sheet:
//
//	moves := model.AllMoves                    // Incorporate|Extra|Delete|Merge
//	band, _ := model.NewBanding(4, 50)         // diagonal offset 4, half-width 50
//	cfg, _ := model.NewConfig(params, moves, band, -12.5)
//
//	table := model.NewConfigTable()
//	table.InsertDefault(cfg)
//	c, err := table.At("P6-C4")                // falls back to the default entry
package model
