// SPDX-License-Identifier: MIT

package recursor

import (
	"math"

	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/sequence"
)

// ChannelModel scores transitions from an observed intensity channel per
// read position. Probabilities come from model.ChannelParams in linear space.
//
// With s = PStay(tpl[j]) and m = (1−s)·PMerge(tpl[j]) (zero unless
// tpl[j] == tpl[j+1]):
//
//	Inc    = log((1−s−m) · Move[tpl[j]][obs])
//	Delete = log((1−s−m) · Move[tpl[j]][0])
//	Extra  = log(s · Stay[tpl[j]][obs])
//	Merge  = log(m · Move[tpl[j]][obs])
type ChannelModel struct {
	read   *sequence.ChannelFeatures
	params model.ChannelParams
}

var _ BatchEmissionModel = (*ChannelModel)(nil)

// NewChannelModel validates params and binds them to a read.
func NewChannelModel(read *sequence.ChannelFeatures, params model.ChannelParams) (*ChannelModel, error) {
	if read == nil {
		return nil, sequence.ErrEmptyInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &ChannelModel{read: read, params: params}, nil
}

// Features returns the read.
func (c *ChannelModel) Features() sequence.Features { return c.read }

// base returns the template base at j; past the end the first base's
// parameters apply.
func base(tpl sequence.Symbols, j int) sequence.Symbol {
	if j >= len(tpl) {
		return sequence.A
	}

	return tpl[j]
}

func (c *ChannelModel) stay(tpl sequence.Symbols, j int) float64 {
	return c.params.PStay[base(tpl, j)]
}

func (c *ChannelModel) merge(tpl sequence.Symbols, j int) float64 {
	if j+1 >= len(tpl) || tpl[j] != tpl[j+1] {
		return 0
	}
	b := tpl[j]

	return (1 - c.params.PStay[b]) * c.params.PMerge[b]
}

// Inc scores advancing onto tpl[j] while observing read channel i.
func (c *ChannelModel) Inc(i int, tpl sequence.Symbols, j int) float64 {
	s, m := c.stay(tpl, j), c.merge(tpl, j)

	return math.Log((1 - s - m) * c.params.MoveDists[base(tpl, j)][c.read.Channel(i)])
}

// Delete scores advancing onto tpl[j] without an observation.
func (c *ChannelModel) Delete(_ int, tpl sequence.Symbols, j int) float64 {
	s, m := c.stay(tpl, j), c.merge(tpl, j)

	return math.Log((1 - s - m) * c.params.MoveDists[base(tpl, j)][0])
}

// Extra scores an additional observation while staying before tpl[j].
func (c *ChannelModel) Extra(i int, tpl sequence.Symbols, j int) float64 {
	return math.Log(c.stay(tpl, j) * c.params.StayDists[base(tpl, j)][c.read.Channel(i)])
}

// Merge scores one observation covering the pair tpl[j]tpl[j+1].
func (c *ChannelModel) Merge(i int, tpl sequence.Symbols, j int) float64 {
	obs := c.read.Channel(i)
	if j+1 >= len(tpl) || obs != tpl[j].Channel() || obs != tpl[j+1].Channel() {
		return math.Inf(-1)
	}

	return math.Log(c.merge(tpl, j) * c.params.MoveDists[tpl[j]][obs])
}

// Emissions evaluates one move for read positions [begin, end). The
// template-dependent factors are computed once per call.
func (c *ChannelModel) Emissions(move model.Move, begin, end int, tpl sequence.Symbols, j int, out []float64) {
	b := base(tpl, j)
	s, m := c.stay(tpl, j), c.merge(tpl, j)
	switch move {
	case model.Incorporate:
		trans := 1 - s - m
		for i := begin; i < end; i++ {
			out[i-begin] = math.Log(trans * c.params.MoveDists[b][c.read.Channel(i)])
		}
	case model.Delete:
		v := math.Log((1 - s - m) * c.params.MoveDists[b][0])
		for i := begin; i < end; i++ {
			out[i-begin] = v
		}
	case model.Extra:
		for i := begin; i < end; i++ {
			out[i-begin] = math.Log(s * c.params.StayDists[b][c.read.Channel(i)])
		}
	default:
		for i := begin; i < end; i++ {
			out[i-begin] = c.Merge(i, tpl, j)
		}
	}
}
