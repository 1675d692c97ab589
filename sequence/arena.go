// SPDX-License-Identifier: MIT

package sequence

import (
	"fmt"
	"sync"
)

// Arena stores every committed template version, oldest first.
//
// Versions are never modified after Commit, so a Symbols value obtained from
// Snapshot may be read concurrently with later commits. Speculative edits
// must Clone a snapshot (or build a fresh slice) and only Commit the result
// once accepted. Commit is serialised by the arena's mutex.
type Arena struct {
	mu       sync.RWMutex
	versions []Symbols
}

// NewArena seeds an arena with its first version (index 0).
func NewArena(initial Symbols) (*Arena, error) {
	if len(initial) == 0 {
		return nil, ErrEmptyInput
	}

	return &Arena{versions: []Symbols{initial.Clone()}}, nil
}

// Current returns the newest version index.
func (a *Arena) Current() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.versions) - 1
}

// Len returns how many versions have been committed.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.versions)
}

// Snapshot returns version v. The result is shared: callers must not mutate it.
func (a *Arena) Snapshot(v int) (Symbols, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if v < 0 || v >= len(a.versions) {
		return nil, fmt.Errorf("Snapshot(%d): %w", v, ErrUnknownVersion)
	}

	return a.versions[v], nil
}

// Latest returns the newest version.
func (a *Arena) Latest() Symbols {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.versions[len(a.versions)-1]
}

// Commit appends next as the newest version and returns its index.
// next is copied, so the caller may keep using its slice.
func (a *Arena) Commit(next Symbols) (int, error) {
	if len(next) == 0 {
		return 0, ErrEmptyInput
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.versions = append(a.versions, next.Clone())

	return len(a.versions) - 1, nil
}

// Contains reports whether some committed version equals s.
func (a *Arena) Contains(s Symbols) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, v := range a.versions {
		if v.Equal(s) {
			return true
		}
	}

	return false
}
