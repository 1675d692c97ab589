// SPDX-License-Identifier: MIT

// Package poa builds a draft consensus by partial-order alignment.
//
// A Graph is a DAG of base nodes between two sentinels, '^' (enter) and
// '$' (exit). The first read is threaded as a chain. Every later read is
// aligned against the whole graph with a DP whose cell (v, i) takes the best
// of its predecessors' columns, then threaded back in: matched nodes gain a
// read, mismatches and extra bases become new nodes, and each consecutive
// pair of the read's path is joined by an edge whose weight counts the
// reads that used it.
//
// Consensus scores each node 2·Reads − N − 0.0001 (N is the read count in
// Global mode, the node's spanning reads otherwise) and returns the maximum
// reaching-score path. Nodes are visited in a fixed topological order
// (reverse DFS post-order from the lowest id, successors by ascending id)
// and predecessors by ascending id; a later candidate replaces the best
// only when strictly better, so equal scores keep the lowest id.
//
// Modes:
//
//   - Global:     the whole read against a path from '^' to '$'.
//   - SemiGlobal: free leading and trailing graph nodes.
//   - Local:      free read ends as well; unaligned ends are threaded as
//     new branches.
//
// Complexity: AddRead is O((V+E)·L) for a read of length L against a graph
// of V nodes and E edges; Consensus is O(V+E).
package poa
