package engine

import (
	"context"
	"sort"
	"time"

	"slotbook/internal/domain/resource"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	catalogCacheTTL     = 30 * time.Second
	catalogCacheCleanup = 5 * time.Minute
)

// Catalog is the registry of bookable units. Listing is read-mostly
// and served from a short-lived cache; administrative mutation goes
// through the store and only invalidates the affected class, so it
// never blocks in-flight bookings.
type Catalog struct {
	store CatalogStore
	cache *gocache.Cache
}

func NewCatalog(store CatalogStore) *Catalog {
	return &Catalog{
		store: store,
		cache: gocache.New(catalogCacheTTL, catalogCacheCleanup),
	}
}

// ListActive returns the active units of a class in ascending label
// order. An empty class is not an error.
func (c *Catalog) ListActive(ctx context.Context, class resource.Class) ([]*resource.Resource, error) {
	key := class.String()
	if v, ok := c.cache.Get(key); ok {
		return v.([]*resource.Resource), nil
	}

	units, err := c.store.ListActive(ctx, class)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list active resources")
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].Label() < units[j].Label()
	})

	c.cache.Set(key, units, gocache.DefaultExpiration)
	return units, nil
}

func (c *Catalog) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return c.store.FindByID(ctx, id)
}

func (c *Catalog) Add(ctx context.Context, r *resource.Resource) error {
	if err := c.store.Insert(ctx, r); err != nil {
		return errs.Wrap(err, "failed to insert resource")
	}
	c.cache.Delete(r.Class().String())
	return nil
}

func (c *Catalog) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r, err := c.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.SetActive(ctx, id, active); err != nil {
		return errs.Wrap(err, "failed to update resource active flag")
	}
	c.cache.Delete(r.Class().String())
	return nil
}
