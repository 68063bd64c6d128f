package usecase

import (
	"context"

	"slotbook/internal/domain/resource"
	"slotbook/internal/engine"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrResourceAlreadyExists = errs.New("resource already exists")

type AddResourceParams struct {
	Class    resource.Class
	Label    string
	Capacity int
}

// CatalogCommands is the administrative side channel: adding and
// retiring units never touches the booking hot path.
type CatalogCommands interface {
	AddResource(ctx context.Context, params AddResourceParams) (*ResourceView, error)
	RetireResource(ctx context.Context, id uuid.UUID) error
}

type catalogCommandsImpl struct {
	catalog *engine.Catalog
	clock   clock.Clock
}

func NewCatalogCommands(catalog *engine.Catalog, clk clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{catalog: catalog, clock: clk}
}

func (c *catalogCommandsImpl) AddResource(ctx context.Context, params AddResourceParams) (*ResourceView, error) {
	unit, err := resource.NewResource(params.Class, params.Label, params.Capacity, c.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := c.catalog.Add(ctx, unit); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrResourceAlreadyExists
		}
		return nil, err
	}
	return newResourceView(unit), nil
}

func (c *catalogCommandsImpl) RetireResource(ctx context.Context, id uuid.UUID) error {
	if err := c.catalog.SetActive(ctx, id, false); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	return nil
}
