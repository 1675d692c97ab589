// SPDX-License-Identifier: MIT

package evaluator

import (
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/recursor"
)

// Options configures New.
type Options struct {
	recursorOpts []recursor.Option
}

// Option mutates Options.
type Option func(*Options)

// WithConfig applies the moves and banding of a chemistry configuration.
func WithConfig(cfg model.Config) Option {
	return func(o *Options) {
		o.recursorOpts = append(o.recursorOpts,
			recursor.WithMoves(cfg.Moves), recursor.WithBanding(cfg.Banding))
	}
}

// WithRecursorOptions forwards options to the underlying recursor.
func WithRecursorOptions(opts ...recursor.Option) Option {
	return func(o *Options) { o.recursorOpts = append(o.recursorOpts, opts...) }
}
