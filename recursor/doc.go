// SPDX-License-Identifier: MIT

// Package recursor fills banded pair-HMM forward matrices.
//
// A Banded recursor combines three independent choices made at construction:
//
//   - an EmissionModel: QvModel (per-move quality values) or ChannelModel
//     (per-position intensity channel);
//   - a Combiner: SumProduct (log-sum-exp, the forward likelihood) or
//     Viterbi (max, the best single alignment);
//   - a batch width: 1 evaluates emissions cell by cell, wider values ask a
//     BatchEmissionModel for whole row chunks at once. Results are identical.
//
// Cell (i, j) holds the log-probability of having emitted the first i read
// symbols while consuming the first j template symbols. Transitions into it:
//
//	Incorporate  (i−1, j−1)   read[i−1] against tpl[j−1]
//	Extra        (i−1, j)     read[i−1] inserted before tpl[j]
//	Delete       (i,   j−1)   tpl[j−1] skipped
//	Merge        (i−1, j−2)   read[i−1] covers the pair tpl[j−2]tpl[j−1]
//
// Column j therefore depends on tpl[0..j] only, so after an edit at
// template position p every column below p is still valid and Fill may
// restart at column p.
//
// Complexity: O(J · min(I, 2·HalfWidth+1)) per full fill.
package recursor
