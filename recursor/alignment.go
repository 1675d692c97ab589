// SPDX-License-Identifier: MIT

package recursor

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/quiver/matrix"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/sequence"
)

// Transcript letters.
const (
	OpMatch     = 'M'
	OpMismatch  = 'R'
	OpInsertion = 'I'
	OpDeletion  = 'D'
	OpMerge     = 'N'
)

// PairwiseAlignment is a gapped rendering of a read against a template.
// Target and Query have equal length; '-' marks a gap.
type PairwiseAlignment struct {
	Target     string
	Query      string
	Transcript string
}

// Accuracy is the fraction of columns that are matches.
func (a *PairwiseAlignment) Accuracy() float64 {
	if len(a.Transcript) == 0 {
		return 0
	}

	return float64(strings.Count(a.Transcript, string(rune(OpMatch)))) / float64(len(a.Transcript))
}

// String renders the three rows one per line.
func (a *PairwiseAlignment) String() string {
	return a.Target + "\n" + a.Query + "\n" + a.Transcript
}

// Alignment traces a filled matrix back from the terminal cell, at each step
// following the transition with the largest contribution. Ties go to the
// first of Incorporate, Extra, Delete, Merge. Under Viterbi this recovers
// the alignment whose score is Score(m).
//
// A merge renders as two columns: the first template base against a gap
// (N), the second against the read base (M).
func (r *Banded) Alignment(m matrix.Columns, tpl sequence.Symbols) (*PairwiseAlignment, error) {
	read := r.em.Features()
	I, J := read.Len(), len(tpl)
	if m.Rows() != I+1 || m.Cols() != J+1 {
		return nil, fmt.Errorf("recursor.Alignment: %w", ErrShape)
	}
	if math.IsInf(Score(m), -1) {
		return nil, ErrUnreachable
	}

	var target, query, ops []byte
	push := func(t, q, op byte) {
		target = append(target, t)
		query = append(query, q)
		ops = append(ops, op)
	}

	i, j := I, J
	for i > 0 || j > 0 {
		best := math.Inf(-1)
		var move model.Move
		found := false
		consider := func(mv model.Move, v float64) {
			if v > best {
				best, move, found = v, mv, true
			}
		}
		if r.moves.Has(model.Incorporate) && i > 0 && j > 0 {
			consider(model.Incorporate, m.Column(j-1)[i-1]+r.em.Inc(i-1, tpl, j-1))
		}
		if r.moves.Has(model.Extra) && i > 0 {
			consider(model.Extra, m.Column(j)[i-1]+r.em.Extra(i-1, tpl, j))
		}
		if r.moves.Has(model.Delete) && j > 0 {
			consider(model.Delete, m.Column(j-1)[i]+r.em.Delete(i, tpl, j-1))
		}
		if r.moves.Has(model.Merge) && i > 0 && j > 1 {
			consider(model.Merge, m.Column(j-2)[i-1]+r.em.Merge(i-1, tpl, j-2))
		}
		if !found {
			return nil, fmt.Errorf("recursor.Alignment at (%d,%d): %w", i, j, ErrUnreachable)
		}

		switch move {
		case model.Incorporate:
			op := byte(OpMatch)
			if read.Base(i-1) != tpl[j-1] {
				op = OpMismatch
			}
			push(tpl[j-1].Byte(), read.Base(i-1).Byte(), op)
			i, j = i-1, j-1
		case model.Extra:
			push('-', read.Base(i-1).Byte(), OpInsertion)
			i--
		case model.Delete:
			push(tpl[j-1].Byte(), '-', OpDeletion)
			j--
		case model.Merge:
			push(tpl[j-1].Byte(), read.Base(i-1).Byte(), OpMatch)
			push(tpl[j-2].Byte(), '-', OpMerge)
			i, j = i-1, j-2
		}
	}

	reverse(target)
	reverse(query)
	reverse(ops)

	return &PairwiseAlignment{Target: string(target), Query: string(query), Transcript: string(ops)}, nil
}

func reverse(b []byte) {
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
}
