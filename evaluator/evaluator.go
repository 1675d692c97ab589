// SPDX-License-Identifier: MIT

package evaluator

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/quiver/matrix"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/recursor"
	"github.com/katalvlaran/quiver/sequence"
)

// Evaluator scores one read against a template.
type Evaluator struct {
	mu  sync.RWMutex
	rec *recursor.Banded
	tpl sequence.Symbols
	m   *matrix.Dense
}

// New builds a QV recursor for features and fills the full matrix.
//
// Errors:
//   - sequence.ErrEmptyInput for an empty template.
//   - model.ErrConfiguration for invalid params or options.
//   - model.ErrBandCoverage when the band cannot hold the alignment.
func New(features *sequence.QvFeatures, tpl sequence.Symbols, params model.QvParams, opts ...Option) (*Evaluator, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	em, err := recursor.NewQvModel(features, params)
	if err != nil {
		return nil, fmt.Errorf("evaluator.New: %w", err)
	}
	rec, err := recursor.New(em, o.recursorOpts...)
	if err != nil {
		return nil, fmt.Errorf("evaluator.New: %w", err)
	}

	return NewWithRecursor(rec, tpl)
}

// NewWithRecursor wraps an existing recursor, e.g. one built on a
// ChannelModel.
func NewWithRecursor(rec *recursor.Banded, tpl sequence.Symbols) (*Evaluator, error) {
	e := &Evaluator{rec: rec}
	if err := e.SetTemplate(tpl); err != nil {
		return nil, err
	}

	return e, nil
}

// Score returns the forward log-likelihood of the read given the template.
func (e *Evaluator) Score() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.Last()
}

// Template returns a copy of the current template.
func (e *Evaluator) Template() sequence.Symbols {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.tpl.Clone()
}

// ReadLen returns the read length.
func (e *Evaluator) ReadLen() int { return e.rec.ReadLen() }

// UsedEntries counts the computed cells of the live matrix.
func (e *Evaluator) UsedEntries() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.m.UsedEntries()
}

// Recursor returns the underlying recursor.
func (e *Evaluator) Recursor() *recursor.Banded { return e.rec }

// SetTemplate replaces the template and refills the whole matrix. On error
// the evaluator keeps its previous template.
func (e *Evaluator) SetTemplate(tpl sequence.Symbols) error {
	if len(tpl) == 0 {
		return fmt.Errorf("evaluator: template: %w", sequence.ErrEmptyInput)
	}
	tpl = tpl.Clone()
	m, err := e.rec.FillAll(tpl)
	if err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}

	e.mu.Lock()
	e.tpl, e.m = tpl, m
	e.mu.Unlock()

	return nil
}

// UpdateTemplate switches to tpl. When the length is unchanged only the
// columns past the prefix shared with the current template are refilled.
func (e *Evaluator) UpdateTemplate(tpl sequence.Symbols) error {
	if len(tpl) == 0 {
		return fmt.Errorf("evaluator: template: %w", sequence.ErrEmptyInput)
	}
	next := tpl.Clone()

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(next) != len(e.tpl) {
		m, err := e.rec.FillAll(next)
		if err != nil {
			return fmt.Errorf("evaluator: %w", err)
		}
		e.tpl, e.m = next, m

		return nil
	}
	split := commonPrefix(e.tpl, next)
	if split == len(next) {
		return nil
	}
	if err := e.rec.Fill(e.m, next, split, len(next)); err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}
	e.tpl = next

	return nil
}

// Recompute refills columns [fromCol, toCol] of the live matrix.
func (e *Evaluator) Recompute(fromCol, toCol int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rec.Fill(e.m, e.tpl, fromCol, toCol)
}

// ScoreTemplate returns the score the read would have against tpl. Columns
// below fromCol are taken from the live matrix as long as tpl shares that
// prefix with the current template; the rest is filled in a private buffer.
func (e *Evaluator) ScoreTemplate(tpl sequence.Symbols, fromCol int) (float64, error) {
	if len(tpl) == 0 {
		return 0, fmt.Errorf("evaluator: template: %w", sequence.ErrEmptyInput)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	split := commonPrefix(e.tpl, tpl)
	if fromCol >= 0 && fromCol < split {
		split = fromCol
	}
	o, err := matrix.NewOverlay(e.m, split, len(tpl)+1)
	if err != nil {
		return 0, fmt.Errorf("evaluator.ScoreTemplate: %w", err)
	}
	if err = e.rec.Fill(o, tpl, split, len(tpl)); err != nil {
		return 0, fmt.Errorf("evaluator.ScoreTemplate: %w", err)
	}

	return o.Last(), nil
}

// Alignment returns the traceback of the live matrix.
func (e *Evaluator) Alignment() (*recursor.PairwiseAlignment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.rec.Alignment(e.m, e.tpl)
}

// commonPrefix returns the length of the longest shared prefix.
func commonPrefix(a, b sequence.Symbols) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	return n
}
