// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"
)

// Move is one transition kind of the pair HMM.
type Move uint8

// Transition kinds.
const (
	// Incorporate consumes one read and one template symbol (match or mismatch).
	Incorporate Move = iota
	// Extra consumes one read symbol only (insertion).
	Extra
	// Delete consumes one template symbol only (deletion).
	Delete
	// Merge consumes one read symbol and two identical template symbols.
	Merge

	numMoves
)

var moveNames = [numMoves]string{"Incorporate", "Extra", "Delete", "Merge"}

// String implements fmt.Stringer.
func (m Move) String() string {
	if m < numMoves {
		return moveNames[m]
	}

	return "Move(?)"
}

// MoveSet is an immutable set of permitted moves.
// Use Has/Contains/Equal instead of inspecting bits.
type MoveSet struct {
	bits uint8
}

// Predefined sets.
var (
	// NoMoves permits nothing; every non-origin cell becomes −∞.
	NoMoves = MoveSet{}
	// BasicMoves permits match/mismatch, insertion and deletion.
	BasicMoves = NewMoveSet(Incorporate, Extra, Delete)
	// AllMoves is BasicMoves plus the homopolymer Merge.
	AllMoves = NewMoveSet(Incorporate, Extra, Delete, Merge)
)

// NewMoveSet builds a set from its members. Unknown moves are ignored.
func NewMoveSet(moves ...Move) MoveSet {
	var s MoveSet
	for _, m := range moves {
		s = s.With(m)
	}

	return s
}

// Has reports whether m is permitted.
func (s MoveSet) Has(m Move) bool {
	return m < numMoves && s.bits&(1<<m) != 0
}

// Contains reports whether every move of o is also in s.
func (s MoveSet) Contains(o MoveSet) bool {
	return s.bits&o.bits == o.bits
}

// Equal reports set equality.
func (s MoveSet) Equal(o MoveSet) bool { return s.bits == o.bits }

// IsEmpty reports whether no move is permitted.
func (s MoveSet) IsEmpty() bool { return s.bits == 0 }

// With returns s plus m.
func (s MoveSet) With(m Move) MoveSet {
	if m >= numMoves {
		return s
	}

	return MoveSet{bits: s.bits | 1<<m}
}

// Without returns s minus m.
func (s MoveSet) Without(m Move) MoveSet {
	if m >= numMoves {
		return s
	}

	return MoveSet{bits: s.bits &^ (1 << m)}
}

// Moves lists the members in declaration order.
func (s MoveSet) Moves() []Move {
	out := make([]Move, 0, numMoves)
	for m := Move(0); m < numMoves; m++ {
		if s.Has(m) {
			out = append(out, m)
		}
	}

	return out
}

// String renders the set as "Incorporate|Extra|…" or "None".
func (s MoveSet) String() string {
	if s.IsEmpty() {
		return "None"
	}
	names := make([]string, 0, numMoves)
	for _, m := range s.Moves() {
		names = append(names, m.String())
	}

	return strings.Join(names, "|")
}

// ParseMoveSet accepts the names produced by String, plus the aliases
// "basic" and "all" (case-insensitive).
func ParseMoveSet(s string) (MoveSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "basic_moves":
		return BasicMoves, nil
	case "all", "all_moves":
		return AllMoves, nil
	case "none", "":
		return NoMoves, nil
	}
	var out MoveSet
	for _, part := range strings.Split(s, "|") {
		found := false
		for m := Move(0); m < numMoves; m++ {
			if strings.EqualFold(strings.TrimSpace(part), moveNames[m]) {
				out = out.With(m)
				found = true
			}
		}
		if !found {
			return NoMoves, fmt.Errorf("%w: unknown move %q", ErrConfiguration, part)
		}
	}

	return out, nil
}
