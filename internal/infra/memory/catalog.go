// Package memory provides in-process stores for the engine. They back
// the default single-node deployment and the unit tests; the postgres
// and redis stores are drop-in replacements behind the same ports.
package memory

import (
	"context"
	"sync"

	"slotbook/internal/domain/resource"
	"slotbook/internal/infra"

	"github.com/google/uuid"
)

type CatalogStore struct {
	mu    sync.RWMutex
	units map[uuid.UUID]*resource.Resource
	order []uuid.UUID // insertion order, for stable listings
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{units: make(map[uuid.UUID]*resource.Resource)}
}

func (s *CatalogStore) Insert(_ context.Context, r *resource.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.units[r.ID()]; exists {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "resource already exists", nil)
	}
	for _, existing := range s.units {
		if existing.Class() == r.Class() && existing.Label() == r.Label() {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "resource label already taken in class", nil)
		}
	}
	s.units[r.ID()] = snapshotResource(r)
	s.order = append(s.order, r.ID())
	return nil
}

func (s *CatalogStore) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.units[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "resource not found", nil)
	}
	return snapshotResource(r), nil
}

func (s *CatalogStore) ListActive(_ context.Context, class resource.Class) ([]*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*resource.Resource
	for _, id := range s.order {
		r := s.units[id]
		if r.Class() == class && r.Active() {
			out = append(out, snapshotResource(r))
		}
	}
	return out, nil
}

func (s *CatalogStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.units[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "resource not found", nil)
	}
	if active {
		r.Activate()
	} else {
		r.Retire()
	}
	return nil
}

// snapshotResource copies the entity so callers never share mutable
// state with the store.
func snapshotResource(r *resource.Resource) *resource.Resource {
	return resource.Reconstruct(r.ID(), r.Class(), r.Label(), r.Capacity(), r.Active(), r.CreatedAt())
}
