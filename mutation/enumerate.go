// SPDX-License-Identifier: MIT

package mutation

import "github.com/katalvlaran/quiver/sequence"

// All lists every insertion, deletion and substitution at positions
// [0, len(tpl)): four insertions, one deletion and three substitutions each.
func All(tpl sequence.Symbols) []Mutation {
	out := make([]Mutation, 0, 8*len(tpl))
	for p := range tpl {
		for _, b := range sequence.Bases {
			out = append(out, Insert(p, b))
		}
		out = append(out, Delete(p))
		for _, b := range sequence.Bases {
			if b != tpl[p] {
				out = append(out, Substitute(p, b))
			}
		}
	}

	return out
}

// Unique lists the mutations of positions [begin, end) that yield distinct
// templates: an insertion that repeats the preceding base is equivalent to
// one at the start of that homopolymer and is skipped.
func Unique(tpl sequence.Symbols, begin, end int) []Mutation {
	if begin < 0 {
		begin = 0
	}
	if end > len(tpl) {
		end = len(tpl)
	}
	var out []Mutation
	for p := begin; p < end; p++ {
		prev := sequence.Gap
		if p > 0 {
			prev = tpl[p-1]
		}
		for _, b := range sequence.Bases {
			if b != prev {
				out = append(out, Insert(p, b))
			}
		}
		out = append(out, Delete(p))
		for _, b := range sequence.Bases {
			if b != tpl[p] {
				out = append(out, Substitute(p, b))
			}
		}
	}

	return out
}

// UniqueNearby lists the unique mutations within [c−n, c+n) of each
// center's start, deduplicated and sorted.
func UniqueNearby(tpl sequence.Symbols, centers []Mutation, n int) []Mutation {
	seen := make(map[Mutation]struct{})
	var out []Mutation
	for _, c := range centers {
		for _, m := range Unique(tpl, c.Start()-n, c.Start()+n) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	return Sorted(out)
}

// Merges lists every merge of an adjacent equal pair into that base.
func Merges(tpl sequence.Symbols) []Mutation {
	var out []Mutation
	for p := 0; p+1 < len(tpl); p++ {
		if tpl[p] == tpl[p+1] {
			out = append(out, MergeAt(p, tpl[p]))
		}
	}

	return out
}
