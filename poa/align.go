// SPDX-License-Identifier: MIT

package poa

import (
	"fmt"
	"math"
)

// move is how a DP cell was reached.
type move uint8

const (
	noMove       move = iota
	startMove         // free entry: '^' → v (row 0, or any row in Local)
	endMove           // v → '$'
	matchMove         // read base equals node base
	mismatchMove      // read base differs from node base
	deleteMove        // node skipped by the read
	extraMove         // read base with no node
)

// column is the DP column of one node; row i means i read bases consumed.
type column struct {
	score []float64
	move  []move
	prev  []int
}

func newColumn(rows int) *column {
	c := &column{
		score: make([]float64, rows),
		move:  make([]move, rows),
		prev:  make([]int, rows),
	}
	for i := range c.score {
		c.score[i] = math.Inf(-1)
		c.prev[i] = -1
	}

	return c
}

// argMax returns the first row holding the column maximum.
func (c *column) argMax() int {
	best := 0
	for i, s := range c.score {
		if s > c.score[best] {
			best = i
		}
	}

	return best
}

// alignColumn fills the column of v from its predecessors' columns.
func (g *Graph) alignColumn(v int, cols []*column, read []byte) *column {
	p, mode := g.opts.params, g.opts.mode
	cur := newColumn(len(read) + 1)
	preds := g.in[v]

	switch {
	case len(preds) == 0:
		cur.score[0], cur.move[0] = 0, noMove
	case mode == SemiGlobal || mode == Local:
		cur.score[0], cur.move[0], cur.prev[0] = 0, startMove, EnterID
	default:
		for _, u := range preds {
			if s := cols[u].score[0] + p.Delete; s > cur.score[0] {
				cur.score[0], cur.move[0], cur.prev[0] = s, deleteMove, u
			}
		}
	}

	base := g.nodes[v].base
	for i := 1; i <= len(read); i++ {
		best, bm, bp := math.Inf(-1), noMove, -1
		if mode == Local {
			best, bm, bp = 0, startMove, EnterID
		}
		for _, u := range preds {
			pc := cols[u]
			s, m := pc.score[i-1]+p.Mismatch, mismatchMove
			if read[i-1] == base {
				s, m = pc.score[i-1]+p.Match, matchMove
			}
			if s > best {
				best, bm, bp = s, m, u
			}
			if s = pc.score[i] + p.Delete; s > best {
				best, bm, bp = s, deleteMove, u
			}
		}
		if s := cur.score[i-1] + p.Insert; s > best {
			best, bm, bp = s, extraMove, v
		}
		cur.score[i], cur.move[i], cur.prev[i] = best, bm, bp
	}

	return cur
}

// alignExit fills the single used cell of '$'. Outside Global mode '$' is
// reachable from every node; in Local mode from that node's best row.
func (g *Graph) alignExit(cols []*column, read []byte) *column {
	I := len(read)
	cur := newColumn(I + 1)
	best, bp := math.Inf(-1), -1
	if g.opts.mode == Global {
		for _, u := range g.in[ExitID] {
			if s := cols[u].score[I]; s > best {
				best, bp = s, u
			}
		}
	} else {
		for u := range g.nodes {
			if u == ExitID {
				continue
			}
			row := I
			if g.opts.mode == Local {
				row = cols[u].argMax()
			}
			if s := cols[u].score[row]; s > best {
				best, bp = s, u
			}
		}
	}
	cur.score[I], cur.move[I], cur.prev[I] = best, endMove, bp

	return cur
}

// alignAndThread aligns read against the graph in topological order and
// threads it along the traceback.
func (g *Graph) alignAndThread(read []byte) error {
	order, err := g.topoOrder()
	if err != nil {
		return err
	}
	cols := make([]*column, len(g.nodes))
	for _, v := range order {
		if v == ExitID {
			cols[v] = g.alignExit(cols, read)
		} else {
			cols[v] = g.alignColumn(v, cols, read)
		}
	}

	return g.thread(read, cols)
}

// thread walks the traceback from ('$', I) to ('^', 0). The read's path is
// rebuilt back to front: next is the node the read enters after the current
// one, and every node put on the path is joined to it.
func (g *Graph) thread(read []byte, cols []*column) error {
	I := len(read)
	i, u, v := I, ExitID, -1
	next := ExitID
	endSpan := cols[ExitID].prev[I]

	link := func(w int) {
		g.traverse(w, next)
		next = w
	}
	threadBases := func(stop int) {
		for ; i > stop; i-- {
			link(g.addNode(read[i-1]))
		}
	}

	for !(u == EnterID && i == 0) {
		c := cols[u]
		prev, m := c.prev[i], c.move[i]
		switch m {
		case endMove:
			if g.opts.mode == Local {
				threadBases(cols[prev].argMax())
			}
		case startMove:
			threadBases(0)
		case matchMove:
			g.nodes[u].reads++
			link(u)
			i--
		case deleteMove:
			// u is skipped; next is unchanged
		case extraMove, mismatchMove:
			link(g.addNode(read[i-1]))
			i--
		default:
			return fmt.Errorf("poa: traceback stuck at node %d row %d", u, i)
		}
		v, u = u, prev
	}
	g.traverse(EnterID, next)

	if v != ExitID {
		return g.tagSpan(v, endSpan)
	}

	return nil
}
