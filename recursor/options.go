// SPDX-License-Identifier: MIT

package recursor

import (
	"fmt"

	"github.com/katalvlaran/quiver/model"
)

// Defaults applied by New when no Option overrides them.
const (
	// DefaultCombiner computes the forward likelihood.
	DefaultCombiner = SumProduct

	// DefaultBatchWidth evaluates emissions one cell at a time.
	DefaultBatchWidth = 1
)

var (
	// DefaultMoves permits every transition including Merge.
	DefaultMoves = model.AllMoves

	// DefaultBanding is a diagonal band of model.DefaultHalfWidth.
	DefaultBanding = model.Banding{DiagonalOffset: model.DefaultDiagonalOffset, HalfWidth: model.DefaultHalfWidth}
)

// Options configures a Banded recursor.
type Options struct {
	moves      model.MoveSet
	banding    model.Banding
	combiner   Combiner
	batchWidth int
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		moves:      DefaultMoves,
		banding:    DefaultBanding,
		combiner:   DefaultCombiner,
		batchWidth: DefaultBatchWidth,
	}
}

// WithMoves restricts the permitted transitions.
func WithMoves(m model.MoveSet) Option {
	return func(o *Options) { o.moves = m }
}

// WithBanding sets the band. Validation happens in New so configuration
// read from files surfaces as model.ErrConfiguration.
func WithBanding(b model.Banding) Option {
	return func(o *Options) { o.banding = b }
}

// WithCombiner selects SumProduct or Viterbi.
// Panics on an unknown combiner.
func WithCombiner(c Combiner) Option {
	if c != SumProduct && c != Viterbi {
		panic(fmt.Sprintf("recursor: WithCombiner(%d): unknown combiner", c))
	}

	return func(o *Options) { o.combiner = c }
}

// WithBatchWidth sets how many rows share one emission evaluation.
// Panics if w < 1.
func WithBatchWidth(w int) Option {
	if w < 1 {
		panic(fmt.Sprintf("recursor: WithBatchWidth(%d): width must be >= 1", w))
	}

	return func(o *Options) { o.batchWidth = w }
}
