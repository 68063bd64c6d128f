package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slotbook/internal/domain/resource"
	"slotbook/internal/engine"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type FreeUnitsParams struct {
	Class       resource.Class
	Date        time.Time
	Start       *time.Time
	End         *time.Time
	MinCapacity int
}

type BookingQueries interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListRequesterReservations(ctx context.Context, requester string) ([]*ReservationView, error)
	FreeUnits(ctx context.Context, params FreeUnitsParams) ([]*ResourceView, error)
	Waitlist(ctx context.Context, class resource.Class) ([]*TicketView, error)
}

type bookingQueriesImpl struct {
	catalog      *engine.Catalog
	ledger       *engine.Ledger
	availability *engine.Availability
	queue        *engine.Queue
	logger       *slog.Logger
}

func NewBookingQueries(
	catalog *engine.Catalog,
	ledger *engine.Ledger,
	availability *engine.Availability,
	queue *engine.Queue,
	logger *slog.Logger,
) BookingQueries {
	return &bookingQueriesImpl{
		catalog:      catalog,
		ledger:       ledger,
		availability: availability,
		queue:        queue,
		logger:       logger,
	}
}

func (q *bookingQueriesImpl) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	rsv, err := q.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, engine.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return newReservationView(rsv, q.classOf(ctx, rsv.ResourceID())), nil
}

func (q *bookingQueriesImpl) ListRequesterReservations(ctx context.Context, requester string) ([]*ReservationView, error) {
	held, err := q.ledger.ListByRequester(ctx, requester)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list requester reservations")
	}

	out := make([]*ReservationView, len(held))
	for i, rsv := range held {
		out[i] = newReservationView(rsv, q.classOf(ctx, rsv.ResourceID()))
	}
	return out, nil
}

func (q *bookingQueriesImpl) FreeUnits(ctx context.Context, params FreeUnitsParams) ([]*ResourceView, error) {
	interval, err := buildInterval(params.Class, params.Date, params.Start, params.End)
	if err != nil {
		return nil, err
	}
	minCapacity := params.MinCapacity
	if minCapacity < 1 {
		minCapacity = 1
	}

	free, err := q.availability.FreeUnits(ctx, params.Class, interval, minCapacity)
	if err != nil {
		return nil, err
	}

	out := make([]*ResourceView, len(free))
	for i, unit := range free {
		out[i] = newResourceView(unit)
	}
	return out, nil
}

func (q *bookingQueriesImpl) Waitlist(ctx context.Context, class resource.Class) ([]*TicketView, error) {
	if !class.IsValid() {
		return nil, ErrInvalidClass
	}
	pending, err := q.queue.Pending(ctx, class)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read waitlist")
	}

	out := make([]*TicketView, len(pending))
	for i, t := range pending {
		out[i] = newTicketView(t, i+1)
	}
	return out, nil
}

// classOf resolves the class for display. A lookup failure degrades
// the view to an empty class rather than failing the whole read.
func (q *bookingQueriesImpl) classOf(ctx context.Context, resourceID uuid.UUID) resource.Class {
	unit, err := q.catalog.FindByID(ctx, resourceID)
	if err != nil {
		q.logger.Warn("resource class lookup failed",
			"resource_id", resourceID, "error", err)
		return ""
	}
	return unit.Class()
}
