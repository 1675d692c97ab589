// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"sync"
)

// FallbackChemistry names the default entry of a ConfigTable.
const FallbackChemistry = "*"

// DefaultAddThreshold is the largest fraction of the full (I+1)·(J+1)
// matrix a read's band may occupy when it joins a multi-read scorer.
// Values ≥ 1 disable the check.
const DefaultAddThreshold = 1.0

// Config bundles everything an evaluator needs for one chemistry.
type Config struct {
	Params             QvParams
	Moves              MoveSet
	Banding            Banding
	FastScoreThreshold float64
	AddThreshold       float64
}

// NewConfig validates its inputs and returns a Config with DefaultAddThreshold.
func NewConfig(params QvParams, moves MoveSet, banding Banding, fastScoreThreshold float64) (Config, error) {
	c := Config{
		Params:             params,
		Moves:              moves,
		Banding:            banding,
		FastScoreThreshold: fastScoreThreshold,
		AddThreshold:       DefaultAddThreshold,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks params, banding and that the move set is non-empty.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := c.Banding.Validate(); err != nil {
		return err
	}
	if c.Moves.IsEmpty() {
		return fmt.Errorf("%w: empty move set", ErrConfiguration)
	}

	return nil
}

// ConfigTable maps chemistry names to configurations, newest first.
// It is safe for concurrent use.
type ConfigTable struct {
	mu    sync.RWMutex
	names []string
	cfgs  []Config
}

// NewConfigTable returns an empty table.
func NewConfigTable() *ConfigTable { return &ConfigTable{} }

func (t *ConfigTable) insert(name string, c Config) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range t.names {
		if n == name {
			return false
		}
	}
	t.names = append([]string{name}, t.names...)
	t.cfgs = append([]Config{c}, t.cfgs...)

	return true
}

// InsertDefault stores c as the fallback entry. It reports false when a
// fallback already exists.
func (t *ConfigTable) InsertDefault(c Config) bool {
	return t.insert(FallbackChemistry, c)
}

// Insert stores c under c.Params.ChemistryName.
func (t *ConfigTable) Insert(c Config) (bool, error) {
	return t.InsertAs(c.Params.ChemistryName, c)
}

// InsertAs stores c under an alias. The fallback name is reserved for
// InsertDefault. It reports false when name is already present.
func (t *ConfigTable) InsertAs(name string, c Config) (bool, error) {
	if name == FallbackChemistry {
		return false, fmt.Errorf("%w: %q is reserved for the default entry", ErrConfiguration, name)
	}
	if name == "" {
		return false, fmt.Errorf("%w: empty chemistry name", ErrConfiguration)
	}

	return t.insert(name, c), nil
}

// At returns the entry for name, else the fallback, else ErrUnknownChemistry.
func (t *ConfigTable) At(name string) (Config, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fallback := -1
	for i, n := range t.names {
		if n == name {
			return t.cfgs[i], nil
		}
		if n == FallbackChemistry {
			fallback = i
		}
	}
	if fallback >= 0 {
		return t.cfgs[fallback], nil
	}

	return Config{}, fmt.Errorf("ConfigTable.At(%q): %w", name, ErrUnknownChemistry)
}

// Keys lists the stored names, newest first.
func (t *ConfigTable) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string(nil), t.names...)
}

// Size returns the number of entries.
func (t *ConfigTable) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.names)
}
