// SPDX-License-Identifier: MIT

package recursor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/quiver/matrix"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/sequence"
)

// Recursor fills forward matrices for one read.
type Recursor interface {
	// Fill recomputes columns [fromCol, toCol] of m for template tpl.
	// Columns below fromCol must already hold values for the same template
	// prefix.
	Fill(m matrix.Columns, tpl sequence.Symbols, fromCol, toCol int) error
	// EmissionModel exposes the read and its transition scores.
	EmissionModel() EmissionModel
}

// Banded is the Recursor used throughout the module.
// It holds no mutable state and may be shared across goroutines.
type Banded struct {
	em       EmissionModel
	batch    BatchEmissionModel
	moves    model.MoveSet
	banding  model.Banding
	combiner Combiner
	width    int
}

var _ Recursor = (*Banded)(nil)

// New builds a recursor around em.
//
// Errors:
//   - model.ErrConfiguration for an invalid band or an empty move set.
func New(em EmissionModel, opts ...Option) (*Banded, error) {
	if em == nil {
		return nil, fmt.Errorf("recursor.New: nil emission model: %w", model.ErrConfiguration)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.banding.Validate(); err != nil {
		return nil, fmt.Errorf("recursor.New: %w", err)
	}
	if o.moves.IsEmpty() {
		return nil, fmt.Errorf("recursor.New: empty move set: %w", model.ErrConfiguration)
	}

	r := &Banded{em: em, moves: o.moves, banding: o.banding, combiner: o.combiner, width: o.batchWidth}
	if o.batchWidth > 1 {
		if b, ok := em.(BatchEmissionModel); ok {
			r.batch = b
		} else {
			r.batch = scalarBatch{em}
		}
	}

	return r, nil
}

// EmissionModel returns the bound emission model.
func (r *Banded) EmissionModel() EmissionModel { return r.em }

// Moves returns the permitted transitions.
func (r *Banded) Moves() model.MoveSet { return r.moves }

// Banding returns the band.
func (r *Banded) Banding() model.Banding { return r.banding }

// Combiner returns the cell combiner.
func (r *Banded) Combiner() Combiner { return r.combiner }

// ReadLen returns the length of the bound read.
func (r *Banded) ReadLen() int { return r.em.Features().Len() }

// NewMatrix allocates a matrix shaped for tpl.
func (r *Banded) NewMatrix(tpl sequence.Symbols) (*matrix.Dense, error) {
	return matrix.NewDense(r.ReadLen()+1, len(tpl)+1)
}

// FillAll allocates and fills a matrix for tpl.
func (r *Banded) FillAll(tpl sequence.Symbols) (*matrix.Dense, error) {
	m, err := r.NewMatrix(tpl)
	if err != nil {
		return nil, err
	}
	if err = r.Fill(m, tpl, 0, len(tpl)); err != nil {
		return nil, err
	}

	return m, nil
}

// Score returns the terminal cell of a filled matrix.
func Score(m matrix.Columns) float64 {
	col := m.Column(m.Cols() - 1)
	if len(col) == 0 {
		return math.Inf(-1)
	}

	return col[len(col)-1]
}

// Fill implements Recursor.
//
// Errors:
//   - model.ErrBandCoverage when the band cannot reach (I, J).
//   - ErrShape when m is not (I+1)×(J+1).
//   - ErrColumnRange when the range is empty or outside [0, J].
func (r *Banded) Fill(m matrix.Columns, tpl sequence.Symbols, fromCol, toCol int) error {
	I, J := r.ReadLen(), len(tpl)
	if err := r.banding.Covers(I, J); err != nil {
		return fmt.Errorf("recursor.Fill(read %d, template %d): %w", I, J, err)
	}
	if m.Rows() != I+1 || m.Cols() != J+1 {
		return fmt.Errorf("recursor.Fill: matrix %dx%d, want %dx%d: %w", m.Rows(), m.Cols(), I+1, J+1, ErrShape)
	}
	if fromCol < 0 || toCol > J || fromCol > toCol {
		return fmt.Errorf("recursor.Fill: columns [%d,%d] of %d: %w", fromCol, toCol, J+1, ErrColumnRange)
	}

	var bufs *chunkBuffers
	if r.batch != nil {
		bufs = newChunkBuffers(r.width)
	}
	for j := fromCol; j <= toCol; j++ {
		if bufs != nil {
			r.fillColumnBatched(m, tpl, j, bufs)
		} else {
			r.fillColumn(m, tpl, j)
		}
	}

	return nil
}

// fillColumn computes column j cell by cell.
func (r *Banded) fillColumn(m matrix.Columns, tpl sequence.Symbols, j int) {
	lo, hi := r.banding.Rows(j, r.ReadLen())
	m.ClearColumn(j)
	col := m.Column(j)
	prev, prev2 := m.Column(j-1), m.Column(j-2)
	inc, extra := r.moves.Has(model.Incorporate), r.moves.Has(model.Extra)
	del, merge := r.moves.Has(model.Delete), r.moves.Has(model.Merge)
	negInf := math.Inf(-1)

	for i := lo; i < hi; i++ {
		if i == 0 && j == 0 {
			col[0] = 0
			continue
		}
		v := negInf
		if inc && i > 0 && j > 0 {
			v = r.combiner.Combine(v, prev[i-1]+r.em.Inc(i-1, tpl, j-1))
		}
		if extra && i > 0 {
			v = r.combiner.Combine(v, col[i-1]+r.em.Extra(i-1, tpl, j))
		}
		if del && j > 0 {
			v = r.combiner.Combine(v, prev[i]+r.em.Delete(i, tpl, j-1))
		}
		if merge && i > 0 && j > 1 {
			v = r.combiner.Combine(v, prev2[i-1]+r.em.Merge(i-1, tpl, j-2))
		}
		col[i] = v
	}
	m.SetUsedRange(j, lo, hi)
}

// chunkBuffers holds one emission vector per move; index k is target row a+k.
type chunkBuffers struct {
	inc, extra, del, merge []float64
}

func newChunkBuffers(w int) *chunkBuffers {
	return &chunkBuffers{
		inc:   make([]float64, w),
		extra: make([]float64, w),
		del:   make([]float64, w),
		merge: make([]float64, w),
	}
}

// fillColumnBatched computes column j in row chunks of r.width, asking the
// batch model for each chunk's emissions before combining.
func (r *Banded) fillColumnBatched(m matrix.Columns, tpl sequence.Symbols, j int, b *chunkBuffers) {
	lo, hi := r.banding.Rows(j, r.ReadLen())
	m.ClearColumn(j)
	col := m.Column(j)
	prev, prev2 := m.Column(j-1), m.Column(j-2)
	inc := r.moves.Has(model.Incorporate) && j > 0
	extra := r.moves.Has(model.Extra)
	del := r.moves.Has(model.Delete) && j > 0
	merge := r.moves.Has(model.Merge) && j > 1
	negInf := math.Inf(-1)

	for a := lo; a < hi; a += r.width {
		end := a + r.width
		if end > hi {
			end = hi
		}
		// rows whose transitions consume a read symbol start at 1
		s := a
		if s == 0 {
			s = 1
		}
		if s < end {
			if inc {
				r.batch.Emissions(model.Incorporate, s-1, end-1, tpl, j-1, b.inc[s-a:end-a])
			}
			if extra {
				r.batch.Emissions(model.Extra, s-1, end-1, tpl, j, b.extra[s-a:end-a])
			}
			if merge {
				r.batch.Emissions(model.Merge, s-1, end-1, tpl, j-2, b.merge[s-a:end-a])
			}
		}
		if del {
			r.batch.Emissions(model.Delete, a, end, tpl, j-1, b.del[:end-a])
		}

		for i := a; i < end; i++ {
			if i == 0 && j == 0 {
				col[0] = 0
				continue
			}
			k := i - a
			v := negInf
			if inc && i > 0 {
				v = r.combiner.Combine(v, prev[i-1]+b.inc[k])
			}
			if extra && i > 0 {
				v = r.combiner.Combine(v, col[i-1]+b.extra[k])
			}
			if del {
				v = r.combiner.Combine(v, prev[i]+b.del[k])
			}
			if merge && i > 0 {
				v = r.combiner.Combine(v, prev2[i-1]+b.merge[k])
			}
			col[i] = v
		}
	}
	m.SetUsedRange(j, lo, hi)
}
