// SPDX-License-Identifier: MIT

// Package sequence holds the immutable per-read inputs of the consensus
// engine and the template versions it refines.
//
// What lives here:
//
//   - Symbol / Symbols: the four-letter nucleotide alphabet plus Gap.
//   - Vector: a bounds-checked float64 container used to pass
//     feature channels and parameter vectors across the driver boundary.
//   - QvFeatures: a read plus its per-move-type quality channels
//     (InsQv, SubsQv, DelQv, DelTag, MergeQv).
//   - ChannelFeatures: a read plus its per-position intensity channel.
//   - Arena: an append-only, indexed list of template versions.
//     Speculative edits work on copies; only Commit adds a version.
//
// Every constructor validates its input and returns a sentinel from
// errors.go; nothing in this package panics on user data.
package sequence
