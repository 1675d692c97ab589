// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/quiver/sequence"
)

// QvParams are the log-domain weights of the quality-value model.
// Each "S" field is a slope multiplied by the matching quality channel.
type QvParams struct {
	ChemistryName string
	ModelName     string

	Match            float64
	Mismatch         float64
	MismatchS        float64
	Branch           float64
	BranchS          float64
	DeletionN        float64
	DeletionWithTag  float64
	DeletionWithTagS float64
	Nce              float64
	NceS             float64
	Merge            [sequence.NumBases]float64
	MergeS           [sequence.NumBases]float64
}

// NewQvParams builds parameters with a single merge weight shared by all
// bases and zero merge slopes.
func NewQvParams(
	chemistry, modelName string,
	match, mismatch, mismatchS,
	branch, branchS,
	deletionN, deletionWithTag, deletionWithTagS,
	nce, nceS,
	merge float64,
) (QvParams, error) {
	p := QvParams{
		ChemistryName:    chemistry,
		ModelName:        modelName,
		Match:            match,
		Mismatch:         mismatch,
		MismatchS:        mismatchS,
		Branch:           branch,
		BranchS:          branchS,
		DeletionN:        deletionN,
		DeletionWithTag:  deletionWithTag,
		DeletionWithTagS: deletionWithTagS,
		Nce:              nce,
		NceS:             nceS,
	}
	for b := range p.Merge {
		p.Merge[b] = merge
	}
	if err := p.Validate(); err != nil {
		return QvParams{}, err
	}

	return p, nil
}

// Validate rejects NaN and infinite weights.
func (p QvParams) Validate() error {
	scalars := []struct {
		name string
		v    float64
	}{
		{"Match", p.Match}, {"Mismatch", p.Mismatch}, {"MismatchS", p.MismatchS},
		{"Branch", p.Branch}, {"BranchS", p.BranchS},
		{"DeletionN", p.DeletionN}, {"DeletionWithTag", p.DeletionWithTag},
		{"DeletionWithTagS", p.DeletionWithTagS},
		{"Nce", p.Nce}, {"NceS", p.NceS},
	}
	for _, s := range scalars {
		if !finite(s.v) {
			return fmt.Errorf("%w: QvParams.%s = %v", ErrConfiguration, s.name, s.v)
		}
	}
	for b := 0; b < sequence.NumBases; b++ {
		if !finite(p.Merge[b]) || !finite(p.MergeS[b]) {
			return fmt.Errorf("%w: QvParams.Merge[%s] not finite", ErrConfiguration, sequence.Symbol(b))
		}
	}

	return nil
}

// ChannelParams drive the channel-intensity model. Probabilities are in
// linear space; the recursor takes their logarithms.
//
// MoveDists[b][o] is the probability of observing channel o (0 = no
// observation, 1..4) when advancing onto template base b; StayDists is the
// same for an extra observation while staying on b.
type ChannelParams struct {
	ChemistryName string

	PStay     [sequence.NumBases]float64
	PMerge    [sequence.NumBases]float64
	MoveDists [sequence.NumBases][sequence.NumBases + 1]float64
	StayDists [sequence.NumBases][sequence.NumBases + 1]float64
}

// Validate checks every probability lies in [0,1].
func (p ChannelParams) Validate() error {
	for b := 0; b < sequence.NumBases; b++ {
		if !prob(p.PStay[b]) || !prob(p.PMerge[b]) {
			return fmt.Errorf("%w: ChannelParams stay/merge for %s outside [0,1]",
				ErrConfiguration, sequence.Symbol(b))
		}
		for o := 0; o <= sequence.NumBases; o++ {
			if !prob(p.MoveDists[b][o]) || !prob(p.StayDists[b][o]) {
				return fmt.Errorf("%w: ChannelParams distribution [%d][%d] outside [0,1]",
					ErrConfiguration, b, o)
			}
		}
	}

	return nil
}

// UniformChannelParams is a flat channel model: the observed channel equals
// the template base with probability correct, the remaining mass split
// evenly among the other outcomes.
func UniformChannelParams(pStay, pMerge, correct float64) (ChannelParams, error) {
	var p ChannelParams
	other := (1 - correct) / float64(sequence.NumBases)
	for b := 0; b < sequence.NumBases; b++ {
		p.PStay[b] = pStay
		p.PMerge[b] = pMerge
		for o := 0; o <= sequence.NumBases; o++ {
			p.MoveDists[b][o] = other
			p.StayDists[b][o] = other
		}
		p.MoveDists[b][b+1] = correct
		p.StayDists[b][b+1] = correct
	}
	if err := p.Validate(); err != nil {
		return ChannelParams{}, err
	}

	return p, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func prob(x float64) bool { return x >= 0 && x <= 1 }
