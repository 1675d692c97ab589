// SPDX-License-Identifier: MIT

package mutation

import (
	"fmt"
	"runtime"

	"github.com/katalvlaran/quiver/recursor"
)

// MinFavorableScoreDiff is the smallest summed delta IsFavorable accepts;
// 1/(1+e^0.04) ≈ 0.49.
const MinFavorableScoreDiff = 0.04

// Options configures a MultiReadScorer.
type Options struct {
	workers      int
	recursorOpts []recursor.Option
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers bounds the goroutines scoring reads in parallel.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("mutation: WithWorkers(%d): need at least one worker", n))
	}

	return func(o *Options) { o.workers = n }
}

// WithRecursorOptions forwards options to every read's recursor, after the
// chemistry's moves and banding.
func WithRecursorOptions(opts ...recursor.Option) Option {
	return func(o *Options) { o.recursorOpts = append(o.recursorOpts, opts...) }
}
