// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package registry resolves data-source identifiers to their repositories.
package registry

import (
	"sort"
	"strings"
	"sync"

	"datashelf/platform/sources/base"
)

// ErrSourceNotFound is returned by Resolve for an unregistered source
// identifier.
var ErrSourceNotFound = base.NotFound("data source not found")

// Registry holds the registered data sources. Resolution is by exact
// identifier match, case-insensitive. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]base.Repository
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{sources: make(map[string]base.Repository)}
}

// Register adds a repository under its DataSource identifier, replacing any
// previous registration under the same identifier.
func (r *Registry) Register(repo base.Repository) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[strings.ToLower(repo.DataSource())] = repo
}

// Resolve returns the repository registered for the given source identifier,
// or ErrSourceNotFound.
func (r *Registry) Resolve(sourceID string) (base.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repo, ok := r.sources[strings.ToLower(sourceID)]
	if !ok {
		return nil, ErrSourceNotFound
	}
	return repo, nil
}

// Sources returns the registered source identifiers, sorted.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.sources))
	for _, repo := range r.sources {
		sources = append(sources, repo.DataSource())
	}
	sort.Strings(sources)
	return sources
}
