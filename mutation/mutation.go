// SPDX-License-Identifier: MIT

package mutation

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/quiver/sequence"
)

// Kind is the edit type.
type Kind uint8

// Edit types, in sort order.
const (
	Insertion Kind = iota
	Deletion
	Substitution
	Merge
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Insertion:
		return "Insertion"
	case Deletion:
		return "Deletion"
	case Substitution:
		return "Substitution"
	case Merge:
		return "Merge"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Mutation is a single-site template edit.
//
//	Insertion     Symbol inserted before Position (Position may equal len).
//	Deletion      tpl[Position] removed; Symbol is Gap.
//	Substitution  tpl[Position] replaced by Symbol.
//	Merge         tpl[Position:Position+2] replaced by Symbol.
type Mutation struct {
	Kind     Kind
	Position int
	Symbol   sequence.Symbol
}

// New validates kind and symbol and returns a Mutation. Deletions ignore
// symbol.
func New(kind Kind, position int, symbol sequence.Symbol) (Mutation, error) {
	if kind > Merge {
		return Mutation{}, fmt.Errorf("%w: kind %d", ErrInvalidMutation, kind)
	}
	if kind == Deletion {
		symbol = sequence.Gap
	} else if !symbol.IsBase() {
		return Mutation{}, fmt.Errorf("%w: %s needs a base, got %s", ErrInvalidMutation, kind, symbol)
	}
	if position < 0 {
		return Mutation{}, fmt.Errorf("%s@%d: %w", kind, position, ErrIndexOutOfRange)
	}

	return Mutation{Kind: kind, Position: position, Symbol: symbol}, nil
}

// Insert returns an insertion of s before position p.
func Insert(p int, s sequence.Symbol) Mutation {
	return Mutation{Kind: Insertion, Position: p, Symbol: s}
}

// Delete returns a deletion of position p.
func Delete(p int) Mutation {
	return Mutation{Kind: Deletion, Position: p, Symbol: sequence.Gap}
}

// Substitute returns a substitution of position p by s.
func Substitute(p int, s sequence.Symbol) Mutation {
	return Mutation{Kind: Substitution, Position: p, Symbol: s}
}

// MergeAt returns a merge of positions p and p+1 into s.
func MergeAt(p int, s sequence.Symbol) Mutation {
	return Mutation{Kind: Merge, Position: p, Symbol: s}
}

// Start is the first template position touched.
func (m Mutation) Start() int { return m.Position }

// End is one past the last template position replaced.
func (m Mutation) End() int {
	switch m.Kind {
	case Insertion:
		return m.Position
	case Merge:
		return m.Position + 2
	default:
		return m.Position + 1
	}
}

// LengthDiff is len(after) − len(before).
func (m Mutation) LengthDiff() int {
	switch m.Kind {
	case Insertion:
		return 1
	case Deletion, Merge:
		return -1
	default:
		return 0
	}
}

// String renders e.g. "Substitution (T) @4".
func (m Mutation) String() string {
	if m.Kind == Deletion {
		return fmt.Sprintf("Deletion @%d", m.Position)
	}

	return fmt.Sprintf("%s (%s) @%d", m.Kind, m.Symbol, m.Position)
}

// Less orders by Start, End, Kind, then Symbol.
func (m Mutation) Less(o Mutation) bool {
	if m.Start() != o.Start() {
		return m.Start() < o.Start()
	}
	if m.End() != o.End() {
		return m.End() < o.End()
	}
	if m.Kind != o.Kind {
		return m.Kind < o.Kind
	}

	return m.Symbol < o.Symbol
}

// Check validates m against a template of length n.
func (m Mutation) Check(n int) error {
	if m.Kind > Merge {
		return fmt.Errorf("%w: kind %d", ErrInvalidMutation, m.Kind)
	}
	if m.Kind != Deletion && !m.Symbol.IsBase() {
		return fmt.Errorf("%w: %s needs a base, got %s", ErrInvalidMutation, m.Kind, m.Symbol)
	}
	limit := n - 1
	switch m.Kind {
	case Insertion:
		limit = n
	case Merge:
		limit = n - 2
	}
	if m.Position < 0 || m.Position > limit {
		return fmt.Errorf("%s on template of %d: %w", m, n, ErrIndexOutOfRange)
	}

	return nil
}

// Apply returns a new template with m applied; tpl is not modified.
func Apply(m Mutation, tpl sequence.Symbols) (sequence.Symbols, error) {
	if err := m.Check(len(tpl)); err != nil {
		return nil, err
	}

	return splice(tpl, m, m.Position), nil
}

// splice applies m at position p (already validated).
func splice(tpl sequence.Symbols, m Mutation, p int) sequence.Symbols {
	out := make(sequence.Symbols, 0, len(tpl)+1)
	out = append(out, tpl[:p]...)
	switch m.Kind {
	case Insertion:
		out = append(out, m.Symbol)
		out = append(out, tpl[p:]...)
	case Deletion:
		out = append(out, tpl[p+1:]...)
	case Substitution:
		out = append(out, m.Symbol)
		out = append(out, tpl[p+1:]...)
	case Merge:
		out = append(out, m.Symbol)
		out = append(out, tpl[p+2:]...)
	}

	return out
}

// Sorted returns a sorted copy of ms.
func Sorted(ms []Mutation) []Mutation {
	out := append([]Mutation(nil), ms...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Less(out[b]) })

	return out
}

// ApplyAll applies every mutation, in sorted order, with positions taken
// relative to the original template.
func ApplyAll(ms []Mutation, tpl sequence.Symbols) (sequence.Symbols, error) {
	out := tpl.Clone()
	shift := 0
	for _, m := range Sorted(ms) {
		if err := m.Check(len(tpl)); err != nil {
			return nil, err
		}
		p := m.Position + shift
		if p < 0 || p > len(out) || (m.Kind != Insertion && p >= len(out)) || (m.Kind == Merge && p+1 >= len(out)) {
			return nil, fmt.Errorf("%s overlaps an earlier mutation: %w", m, ErrIndexOutOfRange)
		}
		out = splice(out, m, p)
		shift += m.LengthDiff()
	}

	return out, nil
}

// Transcript renders ms as an edit transcript over a template of length n:
// M keeps a base, I inserts, D deletes, R substitutes. A merge is "RD".
func Transcript(ms []Mutation, n int) string {
	buf := make([]byte, 0, n+len(ms))
	t := 0
	for _, m := range Sorted(ms) {
		for ; t < m.Start(); t++ {
			buf = append(buf, 'M')
		}
		switch m.Kind {
		case Insertion:
			buf = append(buf, 'I')
		case Deletion:
			buf = append(buf, 'D')
			t++
		case Substitution:
			buf = append(buf, 'R')
			t++
		case Merge:
			buf = append(buf, 'R', 'D')
			t += 2
		}
	}
	for ; t < n; t++ {
		buf = append(buf, 'M')
	}

	return string(buf)
}

// TargetToQueryPositions maps each original template position (plus the end
// position) to its position in the edited template described by transcript.
// For any slice [s,e) of the original, the edited bases are out[s]..out[e].
func TargetToQueryPositions(transcript string) []int {
	out := make([]int, 0, len(transcript)+1)
	q := 0
	for k := 0; k < len(transcript); k++ {
		switch transcript[k] {
		case 'M', 'R':
			out = append(out, q)
			q++
		case 'D':
			out = append(out, q)
		case 'I':
			q++
		}
	}

	return append(out, q)
}
