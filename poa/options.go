// SPDX-License-Identifier: MIT

package poa

import (
	"fmt"
	"strings"
)

// Mode selects which ends of the read and graph align for free.
type Mode uint8

// Alignment modes.
const (
	Global Mode = iota
	SemiGlobal
	Local
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case SemiGlobal:
		return "semiglobal"
	case Local:
		return "local"
	}

	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode is the inverse of Mode.String, case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "global":
		return Global, nil
	case "semiglobal":
		return SemiGlobal, nil
	case "local":
		return Local, nil
	}

	return Global, fmt.Errorf("poa: unknown mode %q", s)
}

// Params are the additive alignment scores.
type Params struct {
	Match    float64
	Mismatch float64
	Insert   float64
	Delete   float64
}

// Default scores.
const (
	DefaultMatch    = 3
	DefaultMismatch = -5
	DefaultInsert   = -4
	DefaultDelete   = -4
)

// DefaultParams returns Match 3, Mismatch −5, Insert −4, Delete −4.
func DefaultParams() Params {
	return Params{Match: DefaultMatch, Mismatch: DefaultMismatch, Insert: DefaultInsert, Delete: DefaultDelete}
}

// Validate requires a positive match score and non-positive penalties.
func (p Params) Validate() error {
	if p.Match <= 0 || p.Mismatch > 0 || p.Insert > 0 || p.Delete > 0 {
		return fmt.Errorf("%w: %+v", ErrParams, p)
	}

	return nil
}

// Options configures a Graph.
type Options struct {
	mode   Mode
	params Params
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{mode: Global, params: DefaultParams()}
}

// WithMode sets the alignment mode. Panics on an unknown mode.
func WithMode(m Mode) Option {
	if m > Local {
		panic(fmt.Sprintf("poa: WithMode(%d): unknown mode", uint8(m)))
	}

	return func(o *Options) { o.mode = m }
}

// WithParams sets the alignment scores. Panics if p fails Validate.
func WithParams(p Params) Option {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}

	return func(o *Options) { o.params = p }
}
