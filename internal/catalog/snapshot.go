package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/naming"
)

// Snapshot is an immutable, versioned view of the catalog and container
// feeds. It is never mutated after construction and may be shared freely.
type Snapshot struct {
	Version    uint64
	LoadedAt   time.Time
	items      map[string]domain.CatalogEntry
	containers map[string]domain.Container
}

// NewSnapshot indexes and validates a feed. Every container must pass
// domain validation; a single bad container rejects the whole snapshot.
func NewSnapshot(version uint64, loadedAt time.Time, items []domain.CatalogEntry, containers []domain.Container) (*Snapshot, error) {
	s := &Snapshot{
		Version:    version,
		LoadedAt:   loadedAt,
		items:      make(map[string]domain.CatalogEntry, len(items)),
		containers: make(map[string]domain.Container, len(containers)),
	}

	for _, e := range items {
		key := naming.Normalize(e.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog entry with empty name")
		}
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("catalog entry %s: unknown kind %q", e.Name, e.Kind)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("catalog entry %s: negative price", e.Name)
		}
		e.Name = key
		s.items[key] = e
	}

	for _, c := range containers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		key := naming.Normalize(c.Name)
		c.Name = key
		s.containers[key] = c
	}

	return s, nil
}

// Entry looks up catalog metadata by identifier or display name
func (s *Snapshot) Entry(name string) (domain.CatalogEntry, error) {
	e, ok := s.items[naming.Normalize(name)]
	if !ok {
		return domain.CatalogEntry{}, fmt.Errorf("%w: %s", domain.ErrCatalogEntryMissing, name)
	}
	return e, nil
}

// Container looks up a container definition by identifier or display name
func (s *Snapshot) Container(name string) (domain.Container, error) {
	c, ok := s.containers[naming.Normalize(name)]
	if !ok {
		return domain.Container{}, fmt.Errorf("%w: %s", domain.ErrContainerNotFound, name)
	}
	return c, nil
}

// Containers returns every container ordered by identifier
func (s *Snapshot) Containers() []domain.Container {
	out := make([]domain.Container, 0, len(s.containers))
	for _, c := range s.containers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ItemCount returns the number of catalog entries
func (s *Snapshot) ItemCount() int {
	return len(s.items)
}

// DisplayNames returns identifier -> display name for items and containers
func (s *Snapshot) DisplayNames() map[string]string {
	out := make(map[string]string, len(s.items)+len(s.containers))
	for k, e := range s.items {
		out[k] = displayOr(e.DisplayName, k)
	}
	for k, c := range s.containers {
		out[k] = displayOr(c.DisplayName, k)
	}
	return out
}

func displayOr(display, key string) string {
	if display == "" {
		return key
	}
	return display
}
