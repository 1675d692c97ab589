// SPDX-License-Identifier: MIT

package evaluator_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quiver/evaluator"
	"github.com/katalvlaran/quiver/model"
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

func newEvaluator(t *testing.T, read, tpl string, opts ...evaluator.Option) *evaluator.Evaluator {
	t.Helper()
	f, err := sequence.NewQvFeatures(read, sequence.QvChannels{})
	require.NoError(t, err)
	e, err := evaluator.New(f, sequence.MustParse(tpl), testParams(t), opts...)
	require.NoError(t, err)

	return e
}

var viterbi = evaluator.WithRecursorOptions(recursor.WithCombiner(recursor.Viterbi))

// TestEvaluator_Score checks the terminal cell and determinism.
func TestEvaluator_Score(t *testing.T) {
	a := newEvaluator(t, "GATTACA", "GATTACA", viterbi)
	b := newEvaluator(t, "GATTACA", "GATTACA", viterbi)
	assert.Equal(t, 0.0, a.Score())
	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, 7, a.ReadLen())

	aln, err := a.Alignment()
	require.NoError(t, err)
	assert.Equal(t, "MMMMMMM", aln.Transcript)
}

// TestEvaluator_EmptyTemplate requires a non-empty template.
func TestEvaluator_EmptyTemplate(t *testing.T) {
	f, err := sequence.NewQvFeatures("GAT", sequence.QvChannels{})
	require.NoError(t, err)
	_, err = evaluator.New(f, nil, testParams(t))
	assert.ErrorIs(t, err, sequence.ErrEmptyInput)
}

// TestEvaluator_BandCoverage surfaces the band error from the constructor.
func TestEvaluator_BandCoverage(t *testing.T) {
	f, err := sequence.NewQvFeatures("ACGTACGTCGT", sequence.QvChannels{})
	require.NoError(t, err)
	cfg := model.Config{Params: testParams(t), Moves: model.AllMoves, Banding: model.Banding{HalfWidth: 2}}
	_, err = evaluator.New(f, sequence.MustParse("ACGTACGTACGTACGT"), cfg.Params, evaluator.WithConfig(cfg))
	assert.ErrorIs(t, err, model.ErrBandCoverage)
}

// TestEvaluator_ScoreTemplateLeavesStateAlone scores several speculative
// templates and checks the live template and score are untouched.
func TestEvaluator_ScoreTemplateLeavesStateAlone(t *testing.T) {
	e := newEvaluator(t, "GATTACA", "GATTACA", viterbi)

	cases := []struct {
		tpl  string
		from int
		want float64
	}{
		{"GATTAACA", 4, -2},  // merge of the inserted A
		{"GATTGACA", 4, -4},  // unmergeable insertion
		{"GATTTCA", 4, -10},  // substitution
		{"GATTCA", 4, -8},    // deletion
		{"AGATTACA", 0, -4},  // insertion at the start
		{"GATTACAG", 7, -4},  // insertion at the end
		{"GATTACA", 7, 0},    // no change
		{"GATTTCA", 99, -10}, // hint past the shared prefix is clamped
	}
	for _, tc := range cases {
		got, err := e.ScoreTemplate(sequence.MustParse(tc.tpl), tc.from)
		require.NoError(t, err, tc.tpl)
		assert.Equal(t, tc.want, got, tc.tpl)
	}
	assert.Equal(t, "GATTACA", e.Template().String())
	assert.Equal(t, 0.0, e.Score())
}

// TestEvaluator_ScoreTemplateMatchesFresh compares speculative and fresh
// forward scores under SumProduct.
func TestEvaluator_ScoreTemplateMatchesFresh(t *testing.T) {
	e := newEvaluator(t, "GATTTACAGATACA", "GATTACAGATTACA")
	for _, tpl := range []string{"GATTACAGATACA", "GATTTACAGATTACA", "GATTACAGCTTACA"} {
		trial, err := e.ScoreTemplate(sequence.MustParse(tpl), 0)
		require.NoError(t, err)
		fresh := newEvaluator(t, "GATTTACAGATACA", tpl)
		assert.InDelta(t, fresh.Score(), trial, 1e-9, tpl)
	}
}

// TestEvaluator_UpdateTemplate refills incrementally and matches a rebuild.
func TestEvaluator_UpdateTemplate(t *testing.T) {
	e := newEvaluator(t, "GATTTACAGATACA", "GATTACAGATTACA")

	require.NoError(t, e.UpdateTemplate(sequence.MustParse("GATTACAGCTTACA")))
	fresh := newEvaluator(t, "GATTTACAGATACA", "GATTACAGCTTACA")
	assert.Equal(t, fresh.Score(), e.Score())

	require.NoError(t, e.UpdateTemplate(sequence.MustParse("GATTTACAGATACA")))
	assert.Equal(t, "GATTTACAGATACA", e.Template().String())
	fresh = newEvaluator(t, "GATTTACAGATACA", "GATTTACAGATACA")
	assert.Equal(t, fresh.Score(), e.Score())

	assert.ErrorIs(t, e.UpdateTemplate(nil), sequence.ErrEmptyInput)
}

// TestEvaluator_Recompute refreshes a range without changing the score.
func TestEvaluator_Recompute(t *testing.T) {
	e := newEvaluator(t, "GATTACA", "GATCACA")
	before := e.Score()
	require.NoError(t, e.Recompute(2, 7))
	assert.Equal(t, before, e.Score())
	assert.ErrorIs(t, e.Recompute(2, 8), recursor.ErrColumnRange)
}

// TestEvaluator_ConcurrentScoreTemplate runs speculative scoring from many
// goroutines against one evaluator.
func TestEvaluator_ConcurrentScoreTemplate(t *testing.T) {
	e := newEvaluator(t, "GATTACAGATTACA", "GATTACAGATTACA", viterbi)
	tpl := sequence.MustParse("GATTACAGATTTACA")
	want, err := e.ScoreTemplate(tpl, 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for k := range results {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			results[k], _ = e.ScoreTemplate(tpl, 10)
		}(k)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, want, r)
	}
}
