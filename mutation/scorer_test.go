// SPDX-License-Identifier: MIT

package mutation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quiver/evaluator"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/mutation"
	"github.com/katalvlaran/quiver/recursor"
	"github.com/katalvlaran/quiver/sequence"
)

func testParams(t *testing.T) model.QvParams {
	t.Helper()
	p, err := model.NewQvParams("unknown", "test",
		0, -10, -0.1, -5, -0.1, -4, -6, -0.1, -8, -0.1, -2)
	require.NoError(t, err)

	return p
}

func testConfig(t *testing.T, moves model.MoveSet) model.Config {
	t.Helper()
	cfg, err := model.NewConfig(testParams(t), moves, model.Banding{DiagonalOffset: 4, HalfWidth: 200}, -12.5)
	require.NoError(t, err)

	return cfg
}

func newScorer(t *testing.T, read, tpl string, moves model.MoveSet, comb recursor.Combiner) *mutation.Scorer {
	t.Helper()
	f, err := sequence.NewQvFeatures(read, sequence.QvChannels{})
	require.NoError(t, err)
	cfg := testConfig(t, moves)
	ev, err := evaluator.New(f, sequence.MustParse(tpl), cfg.Params,
		evaluator.WithConfig(cfg), evaluator.WithRecursorOptions(recursor.WithCombiner(comb)))
	require.NoError(t, err)

	return mutation.NewScorer(ev)
}

// TestScorer_Basic scores each kind in the middle of the template and
// checks the template never changes.
func TestScorer_Basic(t *testing.T) {
	s := newScorer(t, "GATTACA", "GATTACA", model.AllMoves, recursor.Viterbi)
	p := testParams(t)
	assert.Equal(t, 0.0, s.Score())

	cases := []struct {
		m    mutation.Mutation
		want float64
	}{
		{mutation.Insert(4, sequence.A), p.Merge[sequence.A]},
		{mutation.Insert(4, sequence.G), p.DeletionN},
		{mutation.Substitute(4, sequence.T), p.Mismatch},
		{mutation.Delete(4), p.Nce},
	}
	for _, tc := range cases {
		d, err := s.Delta(tc.m)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d, tc.m.String())
		assert.Equal(t, "GATTACA", s.Template().String())
	}
}

// TestScorer_AtBeginning covers edits at the first positions.
func TestScorer_AtBeginning(t *testing.T) {
	s := newScorer(t, "GATTACA", "GATTACA", model.AllMoves, recursor.Viterbi)
	p := testParams(t)
	cases := []struct {
		m    mutation.Mutation
		want float64
	}{
		{mutation.Insert(0, sequence.A), p.DeletionN},
		{mutation.Insert(1, sequence.G), p.Merge[sequence.G]},
		{mutation.Insert(1, sequence.A), p.Merge[sequence.A]},
		{mutation.Insert(1, sequence.T), p.DeletionN},
		{mutation.Substitute(0, sequence.T), p.Mismatch},
		{mutation.Delete(0), p.Nce},
	}
	for _, tc := range cases {
		d, err := s.Delta(tc.m)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d, tc.m.String())
	}
}

// TestScorer_AtEnd covers edits at the last positions.
func TestScorer_AtEnd(t *testing.T) {
	s := newScorer(t, "GATTACA", "GATTACA", model.AllMoves, recursor.Viterbi)
	p := testParams(t)
	cases := []struct {
		m    mutation.Mutation
		want float64
	}{
		{mutation.Insert(7, sequence.A), p.Merge[sequence.A]},
		{mutation.Insert(7, sequence.G), p.DeletionN},
		{mutation.Substitute(6, sequence.T), p.Mismatch},
		{mutation.Delete(6), p.Nce},
	}
	for _, tc := range cases {
		d, err := s.ScoreMutation(tc.m.Kind, tc.m.Position, tc.m.Symbol)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d, tc.m.String())
	}
}

// TestScorer_TinyTemplate edits both ends of a four-base template.
func TestScorer_TinyTemplate(t *testing.T) {
	s := newScorer(t, "GTGC", "GTGC", model.AllMoves, recursor.Viterbi)
	p := testParams(t)

	for _, pos := range []int{0, 3} {
		d, err := s.Delta(mutation.Delete(pos))
		require.NoError(t, err)
		assert.Equal(t, p.Nce, d)
	}
	for _, pos := range []int{0, 4} {
		d, err := s.Delta(mutation.Insert(pos, sequence.T))
		require.NoError(t, err)
		assert.Equal(t, p.DeletionN, d)
	}
	for pos := 0; pos < 4; pos++ {
		d, err := s.Delta(mutation.Substitute(pos, sequence.A))
		require.NoError(t, err)
		assert.Equal(t, p.Mismatch, d)
	}
}

// TestScorer_Idempotent scores the same mutation twice.
func TestScorer_Idempotent(t *testing.T) {
	s := newScorer(t, "GATTTACAGATACA", "GATTACAGATTACA", model.AllMoves, recursor.SumProduct)
	for _, m := range mutation.All(s.Template()) {
		a, err := s.Delta(m)
		require.NoError(t, err)
		b, err := s.Delta(m)
		require.NoError(t, err)
		assert.Equal(t, a, b, m.String())
	}
}

// TestScorer_Additivity checks score(T') ≈ score(T) + delta under the
// forward combiner for every candidate edit.
func TestScorer_Additivity(t *testing.T) {
	const read, tpl = "GATTTACAGATACA", "GATTACAGATTACA"
	s := newScorer(t, read, tpl, model.AllMoves, recursor.SumProduct)
	base := s.Score()
	cands := append(mutation.All(s.Template()), mutation.Merges(s.Template())...)
	for _, m := range cands {
		d, err := s.Delta(m)
		require.NoError(t, err)
		next, err := mutation.Apply(m, s.Template())
		require.NoError(t, err)
		fresh := newScorer(t, read, next.String(), model.AllMoves, recursor.SumProduct)
		want := fresh.Score()
		assert.InDelta(t, want, base+d, 1e-6*math.Max(1, math.Abs(want)), m.String())
	}
}

// TestScorer_MergeNeedsMove rejects Merge without the Merge transition.
func TestScorer_MergeNeedsMove(t *testing.T) {
	s := newScorer(t, "GATTACA", "GATTACA", model.BasicMoves, recursor.Viterbi)
	_, err := s.Delta(mutation.MergeAt(2, sequence.T))
	assert.ErrorIs(t, err, model.ErrConfiguration)

	all := newScorer(t, "GATACA", "GATTACA", model.AllMoves, recursor.Viterbi)
	d, err := all.Delta(mutation.MergeAt(2, sequence.T))
	require.NoError(t, err)
	assert.Equal(t, 2.0, d, "merging the TT the read lacks removes the merge penalty")

	_, err = all.Delta(mutation.MergeAt(6, sequence.A))
	assert.ErrorIs(t, err, mutation.ErrIndexOutOfRange)
}

// TestScorer_IndexOutOfRange rejects positions past the template.
func TestScorer_IndexOutOfRange(t *testing.T) {
	s := newScorer(t, "GATTACA", "GATTACA", model.AllMoves, recursor.Viterbi)
	_, err := s.Delta(mutation.Delete(7))
	assert.ErrorIs(t, err, mutation.ErrIndexOutOfRange)
	_, err = s.ScoreMutation(mutation.Insertion, 8, sequence.A)
	assert.ErrorIs(t, err, mutation.ErrIndexOutOfRange)
	_, err = s.ScoreMutation(mutation.Substitution, -1, sequence.A)
	assert.ErrorIs(t, err, mutation.ErrIndexOutOfRange)
}

// TestScorer_Apply commits an edit and the score follows.
func TestScorer_Apply(t *testing.T) {
	s := newScorer(t, "GATTACA", "GATTCA", model.AllMoves, recursor.Viterbi)
	d, err := s.Delta(mutation.Insert(4, sequence.A))
	require.NoError(t, err)
	assert.Equal(t, 8.0, d)

	require.NoError(t, s.Apply(mutation.Insert(4, sequence.A)))
	assert.Equal(t, "GATTACA", s.Template().String())
	assert.Equal(t, 0.0, s.Score())
}
