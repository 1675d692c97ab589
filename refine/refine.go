// SPDX-License-Identifier: MIT

package refine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/quiver/mutation"
	"github.com/katalvlaran/quiver/sequence"
)

// Scorer is the view of a multi-read scorer that refinement needs.
// *mutation.MultiReadScorer implements it.
type Scorer interface {
	Template() sequence.Symbols
	BaselineScore() float64
	Score(m mutation.Mutation) (float64, error)
	FastIsFavorable(m mutation.Mutation) (bool, error)
	ApplyMutations(ms []mutation.Mutation) error
}

// ScoredMutation pairs a mutation with its summed delta.
type ScoredMutation struct {
	mutation.Mutation
	Score float64
}

// String implements fmt.Stringer.
func (s ScoredMutation) String() string {
	return fmt.Sprintf("%s %.3f", s.Mutation, s.Score)
}

// Result summarises a refinement.
type Result struct {
	Template  sequence.Symbols
	Converged bool
	Rounds    int
	Applied   int
	Score     float64
}

// BestSubset greedily picks the highest-scoring mutation, drops every
// candidate starting within separation of it, and repeats. Equal scores
// keep input order. A zero separation returns a copy of input.
func BestSubset(input []ScoredMutation, separation int) []ScoredMutation {
	rest := append([]ScoredMutation(nil), input...)
	if separation == 0 {
		return rest
	}

	var out []ScoredMutation
	for len(rest) > 0 {
		best := 0
		for i := 1; i < len(rest); i++ {
			if rest[i].Score > rest[best].Score {
				best = i
			}
		}
		b := rest[best]
		out = append(out, b)
		lo, hi := b.Start()-separation, b.Start()+separation
		kept := rest[:0]
		for _, s := range rest {
			if p := s.Start(); p < lo || p > hi {
				kept = append(kept, s)
			}
		}
		rest = kept
	}

	return out
}

func mutations(ss []ScoredMutation) []mutation.Mutation {
	out := make([]mutation.Mutation, len(ss))
	for i, s := range ss {
		out[i] = s.Mutation
	}

	return out
}

// favorable screens tries and scores the survivors.
func favorable(s Scorer, tries []mutation.Mutation) ([]ScoredMutation, error) {
	var out []ScoredMutation
	for _, m := range tries {
		mutationsTried.Inc()
		ok, err := s.FastIsFavorable(m)
		if err != nil {
			return nil, fmt.Errorf("screen %s: %w", m, err)
		}
		if !ok {
			continue
		}
		score, err := s.Score(m)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", m, err)
		}
		out = append(out, ScoredMutation{Mutation: m, Score: score})
	}

	return out, nil
}

// Refine polishes the template of s in place. ctx is checked between
// rounds; on cancellation the partial Result is returned with ctx.Err().
//
// Complexity: each round costs one FastIsFavorable per candidate; round 0
// screens 8 candidates per template position.
func Refine(ctx context.Context, s Scorer, opts ...Option) (Result, error) {
	if s == nil {
		return Result{}, ErrNilScorer
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	res, err := refine(ctx, s, o)
	res.Template = s.Template()
	res.Score = s.BaselineScore()
	refineRounds.Observe(float64(res.Rounds))
	switch {
	case err != nil:
		refinements.WithLabelValues("error").Inc()
	case res.Converged:
		refinements.WithLabelValues("converged").Inc()
	default:
		refinements.WithLabelValues("exhausted").Inc()
	}

	return res, err
}

func refine(ctx context.Context, s Scorer, o Options) (Result, error) {
	var res Result
	history := make(map[string]struct{})
	score := s.BaselineScore()
	var last []ScoredMutation

	for round := 0; round < o.maxIterations; round++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Rounds++
		tpl := s.Template()
		log := o.log.WithFields(logrus.Fields{"round": round, "length": len(tpl)})
		if _, seen := history[tpl.String()]; seen {
			log.Debug("cycle detected")
		}
		if b := s.BaselineScore(); b < score {
			log.WithField("score", b).Debug("score decreased")
		}
		score = s.BaselineScore()

		var tries []mutation.Mutation
		if round == 0 {
			tries = mutation.Unique(tpl, 0, len(tpl))
		} else {
			tries = mutation.UniqueNearby(tpl, mutations(last), o.neighborhood)
		}

		fav, err := favorable(s, tries)
		if err != nil {
			return res, fmt.Errorf("refine: round %d: %w", round, err)
		}
		last = fav
		if len(fav) == 0 {
			res.Converged = true
			log.WithField("score", score).Debug("converged")
			break
		}

		best := BestSubset(fav, o.separation)
		if len(best) > 1 {
			next, err := mutation.ApplyAll(mutations(best), tpl)
			if err != nil {
				return res, fmt.Errorf("refine: round %d: %w", round, err)
			}
			if _, seen := history[next.String()]; seen {
				log.Debug("avoiding cycle")
				best = best[:1]
			}
		}

		history[tpl.String()] = struct{}{}
		if err := s.ApplyMutations(mutations(best)); err != nil {
			return res, fmt.Errorf("refine: round %d: %w", round, err)
		}
		res.Applied += len(best)
		mutationsApplied.Add(float64(len(best)))
		log.WithFields(logrus.Fields{"tried": len(tries), "favorable": len(fav), "applied": len(best)}).Debug("round done")
	}

	return res, nil
}
