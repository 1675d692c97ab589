// SPDX-License-Identifier: MIT

package poa

import (
	"fmt"
	"sort"
)

// Sentinel node ids.
const (
	EnterID = 0
	ExitID  = 1
)

// Sentinel node bases.
const (
	EnterBase = '^'
	ExitBase  = '$'
)

// Node is a snapshot of one graph vertex. Score, ReachingScore and
// InConsensus are those of the last Consensus call.
type Node struct {
	ID            int
	Base          byte
	Reads         int
	SpanningReads int
	Score         float64
	ReachingScore float64
	InConsensus   bool
}

type node struct {
	base        byte
	reads       int
	spanning    int
	score       float64
	reaching    float64
	inConsensus bool
}

type edge struct{ from, to int }

// Graph is a partial-order alignment graph. It is not safe for concurrent
// use.
type Graph struct {
	opts   Options
	nodes  []*node
	out    [][]int // successors, ascending
	in     [][]int // predecessors, ascending
	weight map[edge]int
	reads  int
}

// New returns a graph holding only the enter and exit sentinels.
func New(opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	g := &Graph{opts: o, weight: make(map[edge]int)}
	g.addNode(EnterBase)
	g.addNode(ExitBase)
	g.nodes[EnterID].reads = 0
	g.nodes[ExitID].reads = 0

	return g
}

// Mode returns the alignment mode.
func (g *Graph) Mode() Mode { return g.opts.mode }

// NumReads returns the number of reads threaded so far.
func (g *Graph) NumReads() int { return g.reads }

// NumNodes counts nodes, sentinels included.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges counts distinct edges.
func (g *Graph) NumEdges() int { return len(g.weight) }

// Node returns a snapshot of node id.
func (g *Graph) Node(id int) (Node, error) {
	if id < 0 || id >= len(g.nodes) {
		return Node{}, fmt.Errorf("Node(%d): %w", id, ErrNodeIndex)
	}
	n := g.nodes[id]

	return Node{
		ID:            id,
		Base:          n.base,
		Reads:         n.reads,
		SpanningReads: n.spanning,
		Score:         n.score,
		ReachingScore: n.reaching,
		InConsensus:   n.inConsensus,
	}, nil
}

// Successors returns the successors of id in ascending order.
func (g *Graph) Successors(id int) ([]int, error) {
	if id < 0 || id >= len(g.nodes) {
		return nil, fmt.Errorf("Successors(%d): %w", id, ErrNodeIndex)
	}

	return append([]int(nil), g.out[id]...), nil
}

// EdgeWeight returns how many reads traversed from→to, zero if no such edge.
func (g *Graph) EdgeWeight(from, to int) int { return g.weight[edge{from, to}] }

func (g *Graph) addNode(base byte) int {
	g.nodes = append(g.nodes, &node{base: base, reads: 1})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)

	return len(g.nodes) - 1
}

// insertSorted adds x to ascending s unless present.
func insertSorted(s []int, x int) []int {
	k := sort.SearchInts(s, x)
	if k < len(s) && s[k] == x {
		return s
	}
	s = append(s, 0)
	copy(s[k+1:], s[k:])
	s[k] = x

	return s
}

// traverse records one read passing from→to, creating the edge if needed.
func (g *Graph) traverse(from, to int) {
	e := edge{from, to}
	if g.weight[e] == 0 {
		g.out[from] = insertSorted(g.out[from], to)
		g.in[to] = insertSorted(g.in[to], from)
	}
	g.weight[e]++
}

// AddRead aligns read against the graph and threads it in. Bases are
// compared byte for byte, so case and letters outside ACGT are kept as
// given.
//
// Errors:
//   - ErrEmptyInput for a zero-length read.
func (g *Graph) AddRead(read string) error {
	if len(read) == 0 {
		return fmt.Errorf("poa.AddRead: %w", ErrEmptyInput)
	}
	bases := []byte(read)

	var err error
	if g.reads == 0 {
		err = g.threadFirst(bases)
	} else {
		err = g.alignAndThread(bases)
	}
	if err != nil {
		return err
	}
	g.reads++

	return nil
}

// threadFirst lays the first read out as a chain from '^' to '$'.
func (g *Graph) threadFirst(read []byte) error {
	prev, first := EnterID, -1
	for _, b := range read {
		v := g.addNode(b)
		if first < 0 {
			first = v
		}
		g.traverse(prev, v)
		prev = v
	}
	g.traverse(prev, ExitID)

	return g.tagSpan(first, prev)
}

// tagSpan credits a spanning read to every node from start up to, not
// including, end in topological order.
func (g *Graph) tagSpan(start, end int) error {
	order, err := g.topoOrder()
	if err != nil {
		return err
	}
	spanning := false
	for _, v := range order {
		if v == start {
			spanning = true
		}
		if v == end {
			break
		}
		if spanning {
			g.nodes[v].spanning++
		}
	}

	return nil
}
