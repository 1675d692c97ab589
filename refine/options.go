// SPDX-License-Identifier: MIT

package refine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxIterations caps the number of rounds.
	DefaultMaxIterations = 40

	// DefaultSeparation is the minimum distance between mutations applied in
	// the same round.
	DefaultSeparation = 10

	// DefaultNeighborhood is the radius around last round's favourable
	// mutations searched in the next round.
	DefaultNeighborhood = 20
)

// Options configures Refine.
type Options struct {
	maxIterations int
	separation    int
	neighborhood  int
	log           logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		maxIterations: DefaultMaxIterations,
		separation:    DefaultSeparation,
		neighborhood:  DefaultNeighborhood,
		log:           logrus.StandardLogger(),
	}
}

// WithMaxIterations caps the rounds. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("refine: WithMaxIterations(%d): need at least one round", n))
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithSeparation sets the minimum distance between mutations applied
// together; zero applies every favourable mutation. Panics if n < 0.
func WithSeparation(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("refine: WithSeparation(%d): negative separation", n))
	}

	return func(o *Options) { o.separation = n }
}

// WithNeighborhood sets the search radius of rounds after the first.
// Panics if n < 1.
func WithNeighborhood(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("refine: WithNeighborhood(%d): need a positive radius", n))
	}

	return func(o *Options) { o.neighborhood = n }
}

// WithLogger routes round logs to l. Panics if l is nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("refine: WithLogger(nil)")
	}

	return func(o *Options) { o.log = l }
}
