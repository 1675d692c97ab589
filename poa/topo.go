// SPDX-License-Identifier: MIT

package poa

// DFS colours.
const (
	white uint8 = iota
	gray
	black
)

// topoSorter holds the state of one topological sort.
type topoSorter struct {
	g     *Graph
	state []uint8
	order []int // post-order
}

// topoOrder returns the nodes in reverse DFS post-order. Roots are tried by
// ascending id and successors are followed by ascending id, so '^' comes
// first and '$' last.
//
// Complexity: O(V + E).
func (g *Graph) topoOrder() ([]int, error) {
	t := &topoSorter{
		g:     g,
		state: make([]uint8, len(g.nodes)),
		order: make([]int, 0, len(g.nodes)),
	}
	for v := range g.nodes {
		if t.state[v] == white {
			if err := t.visit(v); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, nil
}

func (t *topoSorter) visit(v int) error {
	switch t.state[v] {
	case gray:
		return ErrCycle
	case black:
		return nil
	}
	t.state[v] = gray
	for _, w := range t.g.out[v] {
		if err := t.visit(w); err != nil {
			return err
		}
	}
	t.state[v] = black
	t.order = append(t.order, v)

	return nil
}
