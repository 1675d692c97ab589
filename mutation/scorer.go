// SPDX-License-Identifier: MIT

package mutation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/quiver/evaluator"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/sequence"
)

// Scorer measures how single mutations change one read's score.
type Scorer struct {
	ev *evaluator.Evaluator
}

// NewScorer wraps an evaluator. The scorer owns it from then on.
func NewScorer(ev *evaluator.Evaluator) *Scorer {
	return &Scorer{ev: ev}
}

// Evaluator returns the wrapped evaluator.
func (s *Scorer) Evaluator() *evaluator.Evaluator { return s.ev }

// Score returns the score against the current template.
func (s *Scorer) Score() float64 { return s.ev.Score() }

// Template returns a copy of the current template.
func (s *Scorer) Template() sequence.Symbols { return s.ev.Template() }

// ScoreMutation returns new − old for the edit (kind, position, symbol).
func (s *Scorer) ScoreMutation(kind Kind, position int, symbol sequence.Symbol) (float64, error) {
	m, err := New(kind, position, symbol)
	if err != nil {
		return 0, err
	}

	return s.Delta(m)
}

// scoreMutated scores the edited template, reusing columns before the edit.
func (s *Scorer) scoreMutated(m Mutation) (float64, error) {
	if m.Kind == Merge && !s.ev.Recursor().Moves().Has(model.Merge) {
		return 0, fmt.Errorf("%s: merge move not enabled: %w", m, model.ErrConfiguration)
	}
	tpl := s.ev.Template()
	next, err := Apply(m, tpl)
	if err != nil {
		return 0, err
	}
	if len(next) == 0 {
		return math.Inf(-1), nil
	}

	return s.ev.ScoreTemplate(next, m.Start())
}

// Delta returns score(T') − score(T). When the current score is −∞ the
// delta is +∞ if T' is reachable and 0 otherwise.
//
// Errors:
//   - ErrIndexOutOfRange for a position outside the template.
//   - model.ErrConfiguration for a Merge without the Merge move.
//   - model.ErrBandCoverage when T' no longer fits the band.
func (s *Scorer) Delta(m Mutation) (float64, error) {
	after, err := s.scoreMutated(m)
	if err != nil {
		return 0, err
	}

	return delta(s.ev.Score(), after), nil
}

func delta(before, after float64) float64 {
	if math.IsInf(before, -1) {
		if math.IsInf(after, -1) {
			return 0
		}

		return math.Inf(1)
	}

	return after - before
}

// Apply commits m to the template.
func (s *Scorer) Apply(m Mutation) error {
	next, err := Apply(m, s.ev.Template())
	if err != nil {
		return err
	}

	return s.ev.UpdateTemplate(next)
}
