// SPDX-License-Identifier: MIT

package poa

import (
	"fmt"
	"io"
	"strings"
)

// DOTFlag tunes GraphViz output.
type DOTFlag uint8

// GraphViz flags.
const (
	// ColorNodes fills consensus nodes.
	ColorNodes DOTFlag = 1 << iota
	// VerboseNodes adds id, spanning reads and scores to each label.
	VerboseNodes
)

// WriteDOT writes the graph in GraphViz DOT syntax. Nodes are record shapes
// labelled with base and read count; edges carry their read weight.
func (g *Graph) WriteDOT(w io.Writer, flags DOTFlag) error {
	if _, err := fmt.Fprintln(w, "digraph G {"); err != nil {
		return err
	}
	for id, n := range g.nodes {
		fill := ""
		if flags&ColorNodes != 0 && n.inConsensus {
			fill = ` style="filled", fillcolor="lightblue" ,`
		}
		var label string
		if flags&VerboseNodes != 0 {
			label = fmt.Sprintf("{ { %d | %c } |{ %d | %d } |{ %0.2f | %0.2f } }",
				id, n.base, n.reads, n.spanning, n.score, n.reaching)
		} else {
			label = fmt.Sprintf("{ %c | %d }", n.base, n.reads)
		}
		if _, err := fmt.Fprintf(w, "%d[shape=Mrecord,%s label=\"%s\"];\n", id, fill, label); err != nil {
			return err
		}
	}
	for from, succ := range g.out {
		for _, to := range succ {
			if _, err := fmt.Fprintf(w, "%d->%d [label=\"%d\"];\n", from, to, g.weight[edge{from, to}]); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")

	return err
}

// DOT returns WriteDOT output as a string.
func (g *Graph) DOT(flags DOTFlag) string {
	var b strings.Builder
	_ = g.WriteDOT(&b, flags)

	return b.String()
}
