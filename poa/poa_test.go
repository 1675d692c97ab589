// SPDX-License-Identifier: MIT

package poa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quiver/mutation"
	"github.com/katalvlaran/quiver/poa"
	"github.com/katalvlaran/quiver/sequence"
)

var pileup = []string{
	"TTTACAGGATAGTCCAGT",
	"ACAGGATACCCCGTCCAGT",
	"ACAGGATAGTCCAGT",
	"TTTACAGGATAGTCCAGTCCCC",
	"TTTACAGGATTAGTCCAGT",
	"TTTACAGGATTAGGTCCCAGT",
	"TTTACAGGATAGTCCAGT",
}

// TestFindConsensus_Pileup recovers the backbone of noisy reads.
func TestFindConsensus_Pileup(t *testing.T) {
	c, err := poa.FindConsensus(pileup)
	require.NoError(t, err)
	assert.Equal(t, "TTTACAGGATAGTCCAGT", c.Sequence)
	tpl, err := c.Template()
	require.NoError(t, err)
	assert.Equal(t, "TTTACAGGATAGTCCAGT", tpl.String())
	assert.Len(t, c.Path, len(c.Sequence))
}

// TestFindConsensus_Deterministic repeats the pileup and compares graphs.
func TestFindConsensus_Deterministic(t *testing.T) {
	build := func() (*poa.Graph, *poa.Consensus) {
		g := poa.New()
		for _, r := range pileup {
			require.NoError(t, g.AddRead(r))
		}
		c, err := g.Consensus()
		require.NoError(t, err)

		return g, c
	}
	g1, c1 := build()
	g2, c2 := build()
	assert.Equal(t, c1, c2)
	assert.Equal(t, g1.DOT(poa.ColorNodes|poa.VerboseNodes), g2.DOT(poa.ColorNodes|poa.VerboseNodes))
}

// TestFindConsensus_SingleRead returns the read unchanged in every mode.
func TestFindConsensus_SingleRead(t *testing.T) {
	for _, m := range []poa.Mode{poa.Global, poa.SemiGlobal, poa.Local} {
		c, err := poa.FindConsensus([]string{"GATTACA"}, poa.WithMode(m))
		require.NoError(t, err, m.String())
		assert.Equal(t, "GATTACA", c.Sequence, m.String())
		assert.Empty(t, c.Variants, m.String())
	}
}

// TestFindConsensus_EmptyInput rejects no reads and zero-length reads.
func TestFindConsensus_EmptyInput(t *testing.T) {
	_, err := poa.FindConsensus(nil)
	assert.ErrorIs(t, err, poa.ErrEmptyInput)
	assert.ErrorIs(t, err, sequence.ErrEmptyInput)

	_, err = poa.FindConsensus([]string{"GATTACA", ""})
	assert.ErrorIs(t, err, poa.ErrEmptyInput)

	_, err = poa.New().Consensus()
	assert.ErrorIs(t, err, poa.ErrEmptyInput)
}

// TestFindConsensus_RawBases keeps case and non-ACGT letters; only the
// scoring template rejects them.
func TestFindConsensus_RawBases(t *testing.T) {
	for _, read := range []string{"acgtACGT", "ACGNNT", "GATXACA"} {
		c, err := poa.FindConsensus([]string{read})
		require.NoError(t, err, read)
		assert.Equal(t, read, c.Sequence)
	}

	c, err := poa.FindConsensus([]string{"gattaca"})
	require.NoError(t, err)
	tpl, err := c.Template()
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", tpl.String())

	c, err = poa.FindConsensus([]string{"GATNACA", "GATNACA", "GATTACA"})
	require.NoError(t, err)
	assert.Equal(t, "GATNACA", c.Sequence)
	_, err = c.Template()
	assert.ErrorIs(t, err, sequence.ErrInvalidSymbol)
}

// TestGraph_IdenticalReads reuses every node and counts each traversal.
func TestGraph_IdenticalReads(t *testing.T) {
	g := poa.New()
	require.NoError(t, g.AddRead("GATTACA"))
	require.NoError(t, g.AddRead("GATTACA"))
	assert.Equal(t, 2, g.NumReads())
	assert.Equal(t, 9, g.NumNodes())
	assert.Equal(t, 8, g.NumEdges())

	n, err := g.Node(2)
	require.NoError(t, err)
	assert.Equal(t, byte('G'), n.Base)
	assert.Equal(t, 2, n.Reads)
	assert.Equal(t, 2, n.SpanningReads)
	assert.Equal(t, 2, g.EdgeWeight(poa.EnterID, 2))
	assert.Equal(t, 2, g.EdgeWeight(8, poa.ExitID))
	assert.Equal(t, 0, g.EdgeWeight(2, 4))

	succ, err := g.Successors(poa.EnterID)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, succ)

	_, err = g.Node(9)
	assert.ErrorIs(t, err, poa.ErrNodeIndex)
	_, err = g.Successors(-1)
	assert.ErrorIs(t, err, poa.ErrNodeIndex)
}

// TestConsensus_SubstitutionVariant reports a minority mismatch branch.
func TestConsensus_SubstitutionVariant(t *testing.T) {
	g := poa.New()
	for _, r := range []string{"GATTACA", "GATTACA", "GATCACA"} {
		require.NoError(t, g.AddRead(r))
	}
	assert.Equal(t, 10, g.NumNodes())
	assert.Equal(t, 1, g.EdgeWeight(4, 9))
	assert.Equal(t, 1, g.EdgeWeight(9, 6))

	c, err := g.Consensus()
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", c.Sequence)
	require.Len(t, c.Variants, 1)
	v := c.Variants[0]
	assert.Equal(t, mutation.Substitute(3, sequence.C), v.Mutation)
	assert.InDelta(t, -1.0001, v.Score, 1e-9)

	n, err := g.Node(9)
	require.NoError(t, err)
	assert.False(t, n.InConsensus)
	n, err = g.Node(5)
	require.NoError(t, err)
	assert.True(t, n.InConsensus)
	assert.InDelta(t, 0.9999, n.Score, 1e-9)
}

// TestConsensus_DeletionVariant reports a minority skip edge.
func TestConsensus_DeletionVariant(t *testing.T) {
	c, err := poa.FindConsensus([]string{"GATTACA", "GATTACA", "GATTCA"})
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", c.Sequence)
	require.Len(t, c.Variants, 1)
	assert.Equal(t, mutation.Delete(4), c.Variants[0].Mutation)
	assert.InDelta(t, -0.9999, c.Variants[0].Score, 1e-9)
}

// TestConsensus_InsertionVariant reports a minority extra base.
func TestConsensus_InsertionVariant(t *testing.T) {
	c, err := poa.FindConsensus([]string{"GATTACA", "GATTACA", "GATTGACA"})
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", c.Sequence)
	require.Len(t, c.Variants, 1)
	assert.Equal(t, mutation.Insert(4, sequence.G), c.Variants[0].Mutation)
	assert.InDelta(t, -1.0001, c.Variants[0].Score, 1e-9)
}

// TestGraph_LocalJoinsSentinels aligns a fragment locally: no new nodes,
// free entry and exit edges around the matched run.
func TestGraph_LocalJoinsSentinels(t *testing.T) {
	g := poa.New(poa.WithMode(poa.Local))
	require.NoError(t, g.AddRead("GATTACA"))
	require.NoError(t, g.AddRead("TTAC"))
	assert.Equal(t, 9, g.NumNodes())
	assert.Equal(t, 1, g.EdgeWeight(poa.EnterID, 4))
	assert.Equal(t, 1, g.EdgeWeight(7, poa.ExitID))
	assert.Equal(t, 2, g.EdgeWeight(5, 6))

	for id, want := range map[int]int{2: 1, 3: 2, 4: 2, 7: 1, 8: 0} {
		n, err := g.Node(id)
		require.NoError(t, err)
		assert.Equal(t, want, n.SpanningReads, "node %d", id)
	}

	c, err := g.Consensus()
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", c.Sequence)
}

// TestGraph_SemiGlobalIdentical threads a repeated read without new nodes.
func TestGraph_SemiGlobalIdentical(t *testing.T) {
	g := poa.New(poa.WithMode(poa.SemiGlobal))
	require.NoError(t, g.AddRead("GATTACAGA"))
	require.NoError(t, g.AddRead("GATTACAGA"))
	assert.Equal(t, 11, g.NumNodes())
	assert.Equal(t, poa.SemiGlobal, g.Mode())

	c, err := g.Consensus()
	require.NoError(t, err)
	assert.Equal(t, "GATTACAGA", c.Sequence)
}

// TestParams covers validation and option panics.
func TestParams(t *testing.T) {
	assert.NoError(t, poa.DefaultParams().Validate())
	assert.ErrorIs(t, poa.Params{Match: 0, Mismatch: -1}.Validate(), poa.ErrParams)
	assert.ErrorIs(t, poa.Params{Match: 1, Insert: 2}.Validate(), poa.ErrParams)
	assert.Panics(t, func() { poa.WithParams(poa.Params{}) })
	assert.Panics(t, func() { poa.WithMode(poa.Mode(9)) })

	p := poa.Params{Match: 1, Mismatch: -1, Insert: -1, Delete: -1}
	c, err := poa.FindConsensus([]string{"GATTACA", "GATTACA"}, poa.WithParams(p))
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", c.Sequence)
}

// TestParseMode round-trips mode names.
func TestParseMode(t *testing.T) {
	for _, m := range []poa.Mode{poa.Global, poa.SemiGlobal, poa.Local} {
		got, err := poa.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := poa.ParseMode("LOCAL")
	require.NoError(t, err)
	assert.Equal(t, poa.Local, got)
	_, err = poa.ParseMode("fuzzy")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", poa.Mode(7).String())
}
