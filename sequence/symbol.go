// SPDX-License-Identifier: MIT

package sequence

import (
	"fmt"
	"strings"
)

// Symbol is one element of the nucleotide alphabet.
// The zero value is A; Gap marks "no symbol" (deletion tags, alignment gaps).
type Symbol uint8

// Alphabet members in channel order.
const (
	A Symbol = iota
	C
	G
	T
	Gap
)

// NumBases is the number of real (non-gap) symbols.
const NumBases = 4

// Bases lists the real symbols in canonical order.
var Bases = [NumBases]Symbol{A, C, G, T}

var symbolLetters = [...]byte{'A', 'C', 'G', 'T', '-'}

// ParseSymbol converts a letter into a Symbol. Lower case is accepted.
// 'N' and '-' both map to Gap.
func ParseSymbol(b byte) (Symbol, error) {
	switch b {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	case '-', 'N', 'n':
		return Gap, nil
	}

	return Gap, fmt.Errorf("%w: %q", ErrInvalidSymbol, b)
}

// Byte returns the letter for s.
func (s Symbol) Byte() byte {
	if int(s) < len(symbolLetters) {
		return symbolLetters[s]
	}

	return '?'
}

// String implements fmt.Stringer.
func (s Symbol) String() string { return string(s.Byte()) }

// IsBase reports whether s is one of A, C, G, T.
func (s Symbol) IsBase() bool { return s < Gap }

// Channel returns the 1-based intensity channel of a base (A=1 … T=4),
// or 0 for Gap.
func (s Symbol) Channel() int {
	if !s.IsBase() {
		return 0
	}

	return int(s) + 1
}

// Complement returns the Watson–Crick partner of s; Gap maps to itself.
func (s Symbol) Complement() Symbol {
	if !s.IsBase() {
		return Gap
	}

	return T - s
}

// Symbols is an ordered run of symbols: a read or a template version.
type Symbols []Symbol

// ParseSymbols converts s into Symbols. Gaps are rejected when bases is true,
// which is what reads and templates require.
func ParseSymbols(s string, basesOnly bool) (Symbols, error) {
	out := make(Symbols, len(s))
	for i := 0; i < len(s); i++ {
		sym, err := ParseSymbol(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		if basesOnly && !sym.IsBase() {
			return nil, fmt.Errorf("position %d: %w: %q", i, ErrInvalidSymbol, s[i])
		}
		out[i] = sym
	}

	return out, nil
}

// MustParse is ParseSymbols(s, true) for literals in tests and examples.
// It panics on invalid input.
func MustParse(s string) Symbols {
	out, err := ParseSymbols(s, true)
	if err != nil {
		panic(err)
	}

	return out
}

// String renders the symbols as letters.
func (s Symbols) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, sym := range s {
		b.WriteByte(sym.Byte())
	}

	return b.String()
}

// Clone returns an independent copy.
func (s Symbols) Clone() Symbols {
	out := make(Symbols, len(s))
	copy(out, s)

	return out
}

// Equal reports element-wise equality.
func (s Symbols) Equal(o Symbols) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// ReverseComplement returns the reverse complement as a new slice.
func (s Symbols) ReverseComplement() Symbols {
	n := len(s)
	out := make(Symbols, n)
	for i, sym := range s {
		out[n-1-i] = sym.Complement()
	}

	return out
}
