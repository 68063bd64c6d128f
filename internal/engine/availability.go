package engine

import (
	"context"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"

	"slotbook/internal/pkg/errs"
)

// Availability derives the free units of a class for an interval by
// subtracting the ledger's overlapping holds from the catalog. The
// result is ordered ascending by label so "next available" selection
// is reproducible: the lowest free code always wins.
type Availability struct {
	catalog *Catalog
	ledger  *Ledger
}

func NewAvailability(catalog *Catalog, ledger *Ledger) *Availability {
	return &Availability{catalog: catalog, ledger: ledger}
}

func (a *Availability) FreeUnits(ctx context.Context, class resource.Class, interval reservation.Interval, minCapacity int) ([]*resource.Resource, error) {
	units, err := a.catalog.ListActive(ctx, class)
	if err != nil {
		return nil, err
	}

	free := make([]*resource.Resource, 0, len(units))
	for _, unit := range units {
		if unit.Capacity() < minCapacity {
			continue
		}
		held, err := a.ledger.ActiveFor(ctx, unit.ID(), interval.Date())
		if err != nil {
			return nil, errs.Wrap(err, "failed to load holds for availability")
		}
		if overlapsAny(interval, held) {
			continue
		}
		free = append(free, unit)
	}
	return free, nil
}

func overlapsAny(interval reservation.Interval, held []*reservation.Reservation) bool {
	for _, h := range held {
		if h.Interval().Overlaps(interval) {
			return true
		}
	}
	return false
}
