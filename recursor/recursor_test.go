// SPDX-License-Identifier: MIT

package recursor_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quiver/matrix"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/recursor"
	"github.com/katalvlaran/quiver/sequence"
)

func testParams(t testing.TB) model.QvParams {
	t.Helper()
	p, err := model.NewQvParams("unknown", "test",
		0, -10, -0.1, -5, -0.1, -4, -6, -0.1, -8, -0.1, -2)
	require.NoError(t, err)

	return p
}

func qvModel(t testing.TB, read string, p model.QvParams) *recursor.QvModel {
	t.Helper()
	f, err := sequence.NewQvFeatures(read, sequence.QvChannels{})
	require.NoError(t, err)
	em, err := recursor.NewQvModel(f, p)
	require.NoError(t, err)

	return em
}

func viterbi(t testing.TB, read string, moves model.MoveSet, band model.Banding) *recursor.Banded {
	t.Helper()
	r, err := recursor.New(qvModel(t, read, testParams(t)),
		recursor.WithMoves(moves), recursor.WithBanding(band), recursor.WithCombiner(recursor.Viterbi))
	require.NoError(t, err)

	return r
}

func score(t testing.TB, r *recursor.Banded, tpl string) (float64, *matrix.Dense) {
	t.Helper()
	m, err := r.FillAll(sequence.MustParse(tpl))
	require.NoError(t, err)

	return recursor.Score(m), m
}

// TestViterbi_SmallMatch checks an identical read scores I·Match and aligns
// without gaps.
func TestViterbi_SmallMatch(t *testing.T) {
	r := viterbi(t, "GATG", model.BasicMoves, model.Unbanded)
	s, m := score(t, r, "GATG")
	assert.Equal(t, 0.0, s)

	aln, err := r.Alignment(m, sequence.MustParse("GATG"))
	require.NoError(t, err)
	assert.Equal(t, "GATG", aln.Target)
	assert.Equal(t, "GATG", aln.Query)
	assert.Equal(t, "MMMM", aln.Transcript)
	assert.Equal(t, 1.0, aln.Accuracy())
}

// TestViterbi_IdentityIsReadLengthTimesMatch uses a non-zero Match weight.
func TestViterbi_IdentityIsReadLengthTimesMatch(t *testing.T) {
	p := testParams(t)
	p.Match = -0.25
	r, err := recursor.New(qvModel(t, "ACGTTGCA", p), recursor.WithCombiner(recursor.Viterbi))
	require.NoError(t, err)
	s, _ := score(t, r, "ACGTTGCA")
	assert.InDelta(t, 8*-0.25, s, 1e-12)
}

// TestSumProduct_IdentityExceedsAllMatch sums over alternative paths, so an
// identical read scores strictly above I·Match.
func TestSumProduct_IdentityExceedsAllMatch(t *testing.T) {
	p := testParams(t)
	p.Match = -0.25
	r, err := recursor.New(qvModel(t, "ACGTTGCA", p), recursor.WithCombiner(recursor.SumProduct))
	require.NoError(t, err)
	s, _ := score(t, r, "ACGTTGCA")
	assert.Greater(t, s, 8*-0.25)
	assert.Less(t, s, 0.0)
}

// TestViterbi_SmallMismatch expects a single Mismatch.
func TestViterbi_SmallMismatch(t *testing.T) {
	r := viterbi(t, "GATC", model.BasicMoves, model.Unbanded)
	s, m := score(t, r, "GATG")
	assert.Equal(t, -10.0, s)

	aln, err := r.Alignment(m, sequence.MustParse("GATG"))
	require.NoError(t, err)
	assert.Equal(t, "GATG", aln.Target)
	assert.Equal(t, "GATC", aln.Query)
	assert.Equal(t, "MMMR", aln.Transcript)
}

// TestViterbi_SmallMerge checks the homopolymer merge beats a deletion.
func TestViterbi_SmallMerge(t *testing.T) {
	r := viterbi(t, "GAT", model.AllMoves, model.Unbanded)
	s, m := score(t, r, "GATT")
	assert.Equal(t, -2.0, s)

	aln, err := r.Alignment(m, sequence.MustParse("GATT"))
	require.NoError(t, err)
	assert.Equal(t, "GATT", aln.Target)
	assert.Equal(t, "GA-T", aln.Query)
	assert.Equal(t, "MMNM", aln.Transcript)

	// without Merge the same pair costs a plain deletion
	basic := viterbi(t, "GAT", model.BasicMoves, model.Unbanded)
	s, _ = score(t, basic, "GATT")
	assert.Equal(t, -4.0, s)
}

// TestViterbi_MediumSized aligns a read with four extra T runs.
func TestViterbi_MediumSized(t *testing.T) {
	tpl := strings.Repeat("GATTACA", 10)
	read := strings.Repeat("GATTACA", 3) + strings.Repeat("GATTTTTTACA", 4) + strings.Repeat("GATTACA", 3)

	r := viterbi(t, read, model.BasicMoves, model.Banding{DiagonalOffset: 4, HalfWidth: 200})
	s, _ := score(t, r, tpl)
	assert.InDelta(t, -80.0, s, 1e-9)
}

// TestForward_AtLeastViterbi checks log-sum-exp never scores below max.
func TestForward_AtLeastViterbi(t *testing.T) {
	p := testParams(t)
	for _, tc := range []struct{ read, tpl string }{
		{"GATC", "GATG"},
		{"GAT", "GATT"},
		{"GATCTTC", "GATTCTC"},
	} {
		fwd, err := recursor.New(qvModel(t, tc.read, p))
		require.NoError(t, err)
		vit, err := recursor.New(qvModel(t, tc.read, p), recursor.WithCombiner(recursor.Viterbi))
		require.NoError(t, err)

		f, _ := score(t, fwd, tc.tpl)
		v, _ := score(t, vit, tc.tpl)
		assert.GreaterOrEqual(t, f, v, tc.read)
	}
}

// TestFill_BandCoverage rejects a band narrower than the length difference.
func TestFill_BandCoverage(t *testing.T) {
	r := viterbi(t, "ACGTACGTCGT", model.AllMoves, model.Banding{HalfWidth: 3})
	_, err := r.FillAll(sequence.MustParse("ACGTACGTACGTACGT"))
	assert.ErrorIs(t, err, model.ErrBandCoverage)
}

// TestFill_WideningNeverDecreases checks monotonicity in the half-width.
func TestFill_WideningNeverDecreases(t *testing.T) {
	read := "ACGTTACGTACGGTACGT"
	tpl := sequence.MustParse("ACGTACGTACGTACGT")
	p := testParams(t)
	last := math.Inf(-1)
	for w := 2; w <= 20; w++ {
		r, err := recursor.New(qvModel(t, read, p), recursor.WithBanding(model.Banding{HalfWidth: w}))
		require.NoError(t, err)
		m, err := r.FillAll(tpl)
		require.NoError(t, err)
		s := recursor.Score(m)
		assert.GreaterOrEqual(t, s, last-1e-9, "half-width %d", w)
		last = s
	}
}

// TestFill_Reproducible fills the same inputs twice under Banding(4,50).
func TestFill_Reproducible(t *testing.T) {
	band, err := model.NewBanding(4, 50)
	require.NoError(t, err)
	tpl := sequence.MustParse("ACGTACGTACGTACGT")

	var first float64
	for k := 0; k < 3; k++ {
		r, err := recursor.New(qvModel(t, "ACGTACGTCGT", testParams(t)),
			recursor.WithMoves(model.AllMoves), recursor.WithBanding(band))
		require.NoError(t, err)
		m, err := r.FillAll(tpl)
		require.NoError(t, err)
		s := recursor.Score(m)
		require.False(t, math.IsInf(s, 0))
		if k == 0 {
			first = s
		}
		assert.Equal(t, first, s)
	}
}

// TestFill_ColumnRangeMatchesFullFill refills a suffix after a template edit
// and compares with a fresh matrix.
func TestFill_ColumnRangeMatchesFullFill(t *testing.T) {
	r, err := recursor.New(qvModel(t, "GATTACAGATTACA", testParams(t)))
	require.NoError(t, err)

	old := sequence.MustParse("GATTACAGATTACA")
	edited := sequence.MustParse("GATTACAGTTTACA")
	m, err := r.FillAll(old)
	require.NoError(t, err)
	require.NoError(t, r.Fill(m, edited, 8, len(edited)))

	fresh, err := r.FillAll(edited)
	require.NoError(t, err)
	assert.Equal(t, recursor.Score(fresh), recursor.Score(m))
	for j := 0; j <= len(edited); j++ {
		assert.Equal(t, fresh.Column(j), m.Column(j), "column %d", j)
	}
}

// TestFill_Overlay scores a speculative template without touching the base.
func TestFill_Overlay(t *testing.T) {
	r, err := recursor.New(qvModel(t, "GATTACA", testParams(t)), recursor.WithCombiner(recursor.Viterbi))
	require.NoError(t, err)
	tpl := sequence.MustParse("GATTACA")
	base, err := r.FillAll(tpl)
	require.NoError(t, err)
	before := base.Clone()

	trial := sequence.MustParse("GATTAACA")
	o, err := matrix.NewOverlay(base, 4, len(trial)+1)
	require.NoError(t, err)
	require.NoError(t, r.Fill(o, trial, 4, len(trial)))
	assert.Equal(t, -2.0, recursor.Score(o))
	assert.Equal(t, before.String(), base.String())
}

// TestFill_Errors covers shape and range validation.
func TestFill_Errors(t *testing.T) {
	r := viterbi(t, "GATG", model.BasicMoves, model.Unbanded)
	tpl := sequence.MustParse("GATG")

	m, err := matrix.NewDense(3, 5)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Fill(m, tpl, 0, 4), recursor.ErrShape)

	m, err = r.NewMatrix(tpl)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Fill(m, tpl, 0, 5), recursor.ErrColumnRange)
	assert.ErrorIs(t, r.Fill(m, tpl, 3, 2), recursor.ErrColumnRange)

	_, err = recursor.New(qvModel(t, "GATG", testParams(t)), recursor.WithBanding(model.Banding{}))
	assert.ErrorIs(t, err, model.ErrConfiguration)
	_, err = recursor.New(qvModel(t, "GATG", testParams(t)), recursor.WithMoves(model.NoMoves))
	assert.ErrorIs(t, err, model.ErrConfiguration)

	assert.Panics(t, func() { recursor.WithBatchWidth(0) })
}

// TestQvModel_Tags checks the tagged deletion and branch weights use the QVs.
func TestQvModel_Tags(t *testing.T) {
	f, err := sequence.NewQvFeatures("GAT", sequence.QvChannels{
		DelQv:  sequence.VectorOf(10, 20, 30),
		InsQv:  sequence.VectorOf(1, 2, 3),
		DelTag: "NTN",
	})
	require.NoError(t, err)
	em, err := recursor.NewQvModel(f, testParams(t))
	require.NoError(t, err)
	tpl := sequence.MustParse("GTT")

	assert.InDelta(t, -6+-0.1*20, em.Delete(1, tpl, 1), 1e-12)
	assert.Equal(t, -4.0, em.Delete(0, tpl, 1))
	assert.Equal(t, -4.0, em.Delete(3, tpl, 1), "past the read end")
	assert.InDelta(t, -5+-0.1*3, em.Extra(2, tpl, 2), 1e-12)
	assert.InDelta(t, -8+-0.1*2, em.Extra(1, tpl, 3), 1e-12)
	assert.True(t, math.IsInf(em.Merge(0, tpl, 1), -1))
}

func channelRecursor(t testing.TB, read string, opts ...recursor.Option) *recursor.Banded {
	t.Helper()
	p, err := model.UniformChannelParams(0.05, 0.3, 0.9)
	require.NoError(t, err)
	f, err := sequence.NewChannelFeatures(read, nil)
	require.NoError(t, err)
	em, err := recursor.NewChannelModel(f, p)
	require.NoError(t, err)
	r, err := recursor.New(em, opts...)
	require.NoError(t, err)

	return r
}

// TestChannel_BatchMatchesScalar requires bit-identical matrices for every
// batch width, with and without a band.
func TestChannel_BatchMatchesScalar(t *testing.T) {
	read := "ACGTTACGGTACCGTAAC"
	tpl := sequence.MustParse("ACGTACGGTACCGTTAAC")
	for _, band := range []model.Banding{model.Unbanded, {DiagonalOffset: 1, HalfWidth: 4}} {
		scalar, err := channelRecursor(t, read, recursor.WithBanding(band)).FillAll(tpl)
		require.NoError(t, err)
		for _, w := range []int{2, 3, 4, 8, 64} {
			batched, err := channelRecursor(t, read, recursor.WithBanding(band), recursor.WithBatchWidth(w)).FillAll(tpl)
			require.NoError(t, err)
			assert.Equal(t, scalar.String(), batched.String(), "width %d", w)
		}
	}
}

// TestQv_BatchAdapterMatchesScalar exercises the generic batch adapter.
func TestQv_BatchAdapterMatchesScalar(t *testing.T) {
	p := testParams(t)
	tpl := sequence.MustParse("GATTACAGATTACA")
	a, err := recursor.New(qvModel(t, "GATTTACAGATACA", p))
	require.NoError(t, err)
	b, err := recursor.New(qvModel(t, "GATTTACAGATACA", p), recursor.WithBatchWidth(5))
	require.NoError(t, err)

	ma, err := a.FillAll(tpl)
	require.NoError(t, err)
	mb, err := b.FillAll(tpl)
	require.NoError(t, err)
	assert.Equal(t, ma.String(), mb.String())
}

// TestChannel_IdentityBeatsMutant checks the channel model prefers the
// template the read was called from.
func TestChannel_IdentityBeatsMutant(t *testing.T) {
	r := channelRecursor(t, "ACGTACGT")
	same, err := r.FillAll(sequence.MustParse("ACGTACGT"))
	require.NoError(t, err)
	other, err := r.FillAll(sequence.MustParse("ACGAACGT"))
	require.NoError(t, err)
	assert.Greater(t, recursor.Score(same), recursor.Score(other))
}

// TestLogAdd covers the −∞ identity and symmetry.
func TestLogAdd(t *testing.T) {
	negInf := math.Inf(-1)
	assert.Equal(t, -3.0, recursor.LogAdd(negInf, -3))
	assert.Equal(t, -3.0, recursor.LogAdd(-3, negInf))
	assert.True(t, math.IsInf(recursor.LogAdd(negInf, negInf), -1))
	assert.InDelta(t, math.Log(2), recursor.LogAdd(0, 0), 1e-15)
	assert.Equal(t, recursor.LogAdd(-1, -7), recursor.LogAdd(-7, -1))
}
