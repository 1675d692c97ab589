// SPDX-License-Identifier: MIT

package poa

import (
	"fmt"
	"math"

	"github.com/katalvlaran/quiver/mutation"
	"github.com/katalvlaran/quiver/sequence"
)

// Variant is a template edit suggested by a graph bubble next to the
// consensus path, with the score of the node that suggests it.
type Variant struct {
	mutation.Mutation
	Score float64
}

// Consensus is the best path through a Graph.
type Consensus struct {
	Sequence string
	Path     []int
	Variants []Variant
}

// Template parses Sequence for scoring.
//
// Errors:
//   - sequence.ErrInvalidSymbol when the consensus holds a letter other than
//     A, C, G or T in either case.
func (c *Consensus) Template() (sequence.Symbols, error) {
	return sequence.ParseSymbols(c.Sequence, true)
}

// FindConsensus threads reads, in order, into a new graph and returns its
// consensus. A single read comes back unchanged.
//
// Errors:
//   - ErrEmptyInput for no reads or a zero-length read.
func FindConsensus(reads []string, opts ...Option) (*Consensus, error) {
	if len(reads) == 0 {
		return nil, fmt.Errorf("poa.FindConsensus: no reads: %w", ErrEmptyInput)
	}
	g := New(opts...)
	for k, r := range reads {
		if err := g.AddRead(r); err != nil {
			return nil, fmt.Errorf("read %d: %w", k, err)
		}
	}

	return g.Consensus()
}

// Consensus extracts the maximum-score path and marks its nodes.
func (g *Graph) Consensus() (*Consensus, error) {
	if g.reads == 0 {
		return nil, fmt.Errorf("poa.Consensus: %w", ErrEmptyInput)
	}
	path, err := g.maxPath()
	if err != nil {
		return nil, err
	}
	for _, n := range g.nodes {
		n.inConsensus = false
	}
	seq := make([]byte, len(path))
	for k, v := range path {
		g.nodes[v].inConsensus = true
		seq[k] = g.nodes[v].base
	}

	return &Consensus{Sequence: string(seq), Path: path, Variants: g.variants(path)}, nil
}

// nodeScore is 2·Reads − N − 0.0001; N is every read in Global mode and the
// node's spanning reads otherwise.
func (g *Graph) nodeScore(n *node) float64 {
	total := g.reads
	if g.opts.mode != Global {
		total = n.spanning
	}

	return float64(2*n.reads-total) - 0.0001
}

// maxPath returns the base nodes of the maximum reaching-score path.
// A node extends a predecessor's path only if that raises its own score, so
// paths start wherever the running sum would turn negative.
func (g *Graph) maxPath() ([]int, error) {
	order, err := g.topoOrder()
	if err != nil {
		return nil, err
	}
	g.nodes[EnterID].reaching = 0
	bestPrev := make([]int, len(g.nodes))
	best, bestScore := -1, math.Inf(-1)

	for _, v := range order[1 : len(order)-1] {
		n := g.nodes[v]
		n.score = g.nodeScore(n)
		n.reaching = n.score
		bestPrev[v] = -1
		for _, u := range g.in[v] {
			rsc := n.score + g.nodes[u].reaching
			if rsc > n.reaching {
				n.reaching, bestPrev[v] = rsc, u
			}
			if rsc > bestScore {
				best, bestScore = v, rsc
			}
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("poa: no consensus path: %w", ErrEmptyInput)
	}

	var rev []int
	for v := best; v >= 0; v = bestPrev[v] {
		rev = append(rev, v)
	}
	path := make([]int, len(rev))
	for k, v := range rev {
		path[len(rev)-1-k] = v
	}

	return path, nil
}

func contains(sorted []int, x int) bool {
	for _, y := range sorted {
		if y == x {
			return true
		}
		if y > x {
			return false
		}
	}

	return false
}

// bestBranch returns the highest-scoring child of v (skipping skip) that is
// also a parent of target, or -1.
func (g *Graph) bestBranch(v, target, skip int) int {
	best, bestScore := -1, math.Inf(-1)
	for _, c := range g.out[v] {
		if c == skip || !contains(g.in[target], c) {
			continue
		}
		if s := g.nodes[c].score; s > bestScore {
			best, bestScore = c, s
		}
	}

	return best
}

// variants looks at each consensus node v = path[k] for:
//   - an edge v → path[k+2]: deleting position k+1;
//   - a child of v feeding path[k+1]: inserting its base at k+1;
//   - a child of v other than path[k+1] feeding path[k+2]: substituting
//     its base at k+1.
//
// Deletions score −Score(path[k+1]); the others score the branch node.
func (g *Graph) variants(path []int) []Variant {
	var out []Variant
	for k := 2; k < len(path)-2; k++ {
		v, next, after := path[k], path[k+1], path[k+2]
		if contains(g.out[v], after) {
			out = append(out, Variant{Mutation: mutation.Delete(k + 1), Score: -g.nodes[next].score})
		}
		if c := g.bestBranch(v, next, -1); c >= 0 {
			if vr, ok := g.branchVariant(mutation.Insertion, k+1, c); ok {
				out = append(out, vr)
			}
		}
		if c := g.bestBranch(v, after, next); c >= 0 {
			if vr, ok := g.branchVariant(mutation.Substitution, k+1, c); ok {
				out = append(out, vr)
			}
		}
	}

	return out
}

// branchVariant reports false for a branch base that is not a nucleotide.
func (g *Graph) branchVariant(kind mutation.Kind, pos, c int) (Variant, bool) {
	sym, err := sequence.ParseSymbol(g.nodes[c].base)
	if err != nil || !sym.IsBase() {
		return Variant{}, false
	}

	return Variant{Mutation: mutation.Mutation{Kind: kind, Position: pos, Symbol: sym}, Score: g.nodes[c].score}, true
}
