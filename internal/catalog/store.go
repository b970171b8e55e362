package catalog

import (
	"sync/atomic"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
	"github.com/osse101/SpaceCases_Go/internal/naming"
)

// Provider hands out the current catalog snapshot
type Provider interface {
	Current() (*Snapshot, error)
}

// Store holds the active snapshot. Readers never block; a refresh swaps
// the pointer in one step so a request sees either the old or new
// snapshot, never a mix.
type Store struct {
	current  atomic.Pointer[Snapshot]
	resolver naming.Resolver
}

// NewStore creates an empty store. The resolver, if set, is reloaded with
// display names on every swap.
func NewStore(resolver naming.Resolver) *Store {
	return &Store{resolver: resolver}
}

// Current returns the active snapshot or ErrCatalogUnavailable before the first load
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return snap, nil
}

// Swap installs snap as the active snapshot
func (s *Store) Swap(snap *Snapshot) {
	s.current.Store(snap)
	if s.resolver != nil {
		s.resolver.Load(snap.DisplayNames())
	}
	metrics.CatalogVersion.Set(float64(snap.Version))
	metrics.CatalogItems.Set(float64(snap.ItemCount()))
}
