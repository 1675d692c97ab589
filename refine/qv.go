// SPDX-License-Identifier: MIT

package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/quiver/mutation"
)

// minProbability stands in for zero so a certain call gets a finite QV.
const minProbability = 0x1p-1022

// ProbabilityToQV converts an error probability to a Phred score,
// round(−10·log10(p)).
func ProbabilityToQV(p float64) (int, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: %g", ErrProbability, p)
	}
	if p == 0 {
		p = minProbability
	}

	return int(math.Round(-10 * math.Log10(p))), nil
}

// ConsensusQVs returns one Phred quality per template position. Each
// unique single-base alternative at the position with a negative summed
// delta d adds e^d to a sum S; the error probability is 1 − 1/(1+S).
func ConsensusQVs(s Scorer) ([]int, error) {
	if s == nil {
		return nil, ErrNilScorer
	}
	tpl := s.Template()
	qvs := make([]int, len(tpl))
	for pos := range tpl {
		sum := 0.0
		for _, m := range mutation.Unique(tpl, pos, pos+1) {
			d, err := s.Score(m)
			if err != nil {
				return nil, fmt.Errorf("refine: ConsensusQVs: %s: %w", m, err)
			}
			if d < 0 {
				sum += math.Exp(d)
			}
		}
		qv, err := ProbabilityToQV(1 - 1/(1+sum))
		if err != nil {
			return nil, err
		}
		qvs[pos] = qv
	}

	return qvs, nil
}
