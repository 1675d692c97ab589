// SPDX-License-Identifier: MIT

package recursor

import (
	"math"

	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/sequence"
)

// EmissionModel scores single transitions leaving cell (i, j): i indexes the
// read, j the template. Implementations must be safe for concurrent use.
type EmissionModel interface {
	// Features returns the read being aligned.
	Features() sequence.Features
	// Inc scores read[i] against tpl[j].
	Inc(i int, tpl sequence.Symbols, j int) float64
	// Delete scores skipping tpl[j] at read position i (i may equal the read length).
	Delete(i int, tpl sequence.Symbols, j int) float64
	// Extra scores inserting read[i] before tpl[j] (j may equal len(tpl)).
	Extra(i int, tpl sequence.Symbols, j int) float64
	// Merge scores read[i] covering tpl[j] and tpl[j+1].
	Merge(i int, tpl sequence.Symbols, j int) float64
}

// BatchEmissionModel evaluates one move for a run of read positions.
// out[k] must equal the scalar score at read position begin+k.
type BatchEmissionModel interface {
	EmissionModel
	Emissions(move model.Move, begin, end int, tpl sequence.Symbols, j int, out []float64)
}

// scalarBatch adapts any EmissionModel to BatchEmissionModel.
type scalarBatch struct {
	EmissionModel
}

func (s scalarBatch) Emissions(move model.Move, begin, end int, tpl sequence.Symbols, j int, out []float64) {
	f := moveFunc(s.EmissionModel, move)
	for i := begin; i < end; i++ {
		out[i-begin] = f(i, tpl, j)
	}
}

func moveFunc(em EmissionModel, move model.Move) func(int, sequence.Symbols, int) float64 {
	switch move {
	case model.Incorporate:
		return em.Inc
	case model.Extra:
		return em.Extra
	case model.Delete:
		return em.Delete
	default:
		return em.Merge
	}
}

// QvModel scores transitions from per-position quality values.
type QvModel struct {
	read   *sequence.QvFeatures
	params model.QvParams
}

var _ EmissionModel = (*QvModel)(nil)

// NewQvModel validates params and binds them to a read.
func NewQvModel(read *sequence.QvFeatures, params model.QvParams) (*QvModel, error) {
	if read == nil {
		return nil, sequence.ErrEmptyInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &QvModel{read: read, params: params}, nil
}

// Features returns the read.
func (q *QvModel) Features() sequence.Features { return q.read }

// Params returns the bound parameters.
func (q *QvModel) Params() model.QvParams { return q.params }

// Inc is Match, or Mismatch plus the substitution-QV slope.
func (q *QvModel) Inc(i int, tpl sequence.Symbols, j int) float64 {
	if q.read.Base(i) == tpl[j] {
		return q.params.Match
	}

	return q.params.Mismatch + q.params.MismatchS*q.read.SubsQv(i)
}

// Delete uses the tagged weight when the basecaller's deletion tag names the
// skipped base, DeletionN otherwise.
func (q *QvModel) Delete(i int, tpl sequence.Symbols, j int) float64 {
	if i < q.read.Len() && q.read.DelTag(i) == tpl[j] {
		return q.params.DeletionWithTag + q.params.DeletionWithTagS*q.read.DelQv(i)
	}

	return q.params.DeletionN
}

// Extra is a Branch when the inserted base repeats the next template base,
// a non-cognate extra (Nce) otherwise.
func (q *QvModel) Extra(i int, tpl sequence.Symbols, j int) float64 {
	if j < len(tpl) && q.read.Base(i) == tpl[j] {
		return q.params.Branch + q.params.BranchS*q.read.InsQv(i)
	}

	return q.params.Nce + q.params.NceS*q.read.InsQv(i)
}

// Merge is only possible over a homopolymer pair matching the read base.
func (q *QvModel) Merge(i int, tpl sequence.Symbols, j int) float64 {
	b := q.read.Base(i)
	if j+1 >= len(tpl) || tpl[j] != b || tpl[j+1] != b {
		return math.Inf(-1)
	}

	return q.params.Merge[b] + q.params.MergeS[b]*q.read.MergeQv(i)
}
