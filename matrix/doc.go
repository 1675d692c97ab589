// SPDX-License-Identifier: MIT

// Package matrix provides the dynamic-programming storage used by the
// recursors: a column-major log-domain Dense matrix whose cells start at −∞
// and that tracks, per column, the half-open row range actually computed.
//
// Two implementations satisfy Columns:
//
//   - *Dense: owns all of its storage.
//   - *Overlay: reads a prefix of columns from a shared base matrix and keeps
//     the suffix in a private Dense. Speculative scoring fills only the
//     suffix, so many overlays may sit on one live matrix concurrently as
//     long as nobody writes the base.
//
// Invariant: every cell outside a column's used range holds −∞. Fill code
// can therefore read neighbouring cells without consulting the ranges.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) −∞ fill; At/Set: O(1); Column: O(1);
//     ClearColumn: O(used rows); Clone: O(r*c); NewOverlay: O(r*(c−split)).
package matrix
