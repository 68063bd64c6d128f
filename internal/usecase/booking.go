package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"
	"slotbook/internal/engine"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrResourceUnavailable = errs.New("resource unavailable")
	ErrResourceNotFound    = errs.New("resource not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrTicketNotFound      = errs.New("waiting ticket not found")
	ErrAlreadyReleased     = errs.New("reservation already released")
	ErrInvalidInterval     = errs.New("invalid interval")
	ErrInvalidClass        = errs.New("unknown resource class")
	ErrClassMismatch       = errs.New("resource does not belong to the requested class")
	ErrEmptyRequester      = errs.New("requester is required")
)

type BookStatus string

const (
	StatusReserved BookStatus = "reserved"
	StatusQueued   BookStatus = "queued"
)

type BookParams struct {
	Class       resource.Class
	Requester   string
	Date        time.Time
	Start       *time.Time // nil for whole-day classes
	End         *time.Time
	MinCapacity int
	// ResourceID pins the request to one unit (explicit-selection
	// flows). When set there is no auto-substitution: a conflict is
	// reported back so the caller can re-poll availability.
	ResourceID *uuid.UUID
}

// BookResult is a terminal state: either a reservation was made or the
// request was parked on the waitlist. QUEUED is not an error.
type BookResult struct {
	Status      BookStatus
	Reservation *ReservationView
	Ticket      *TicketView
}

type BookingCommands interface {
	Book(ctx context.Context, params BookParams) (*BookResult, error)
	Release(ctx context.Context, reservationID uuid.UUID) error
	CancelWaiting(ctx context.Context, ticketID uuid.UUID) error
}

type bookingCommandsImpl struct {
	catalog      *engine.Catalog
	ledger       *engine.Ledger
	availability *engine.Availability
	queue        *engine.Queue
	publisher    engine.ReassignmentPublisher
	clock        clock.Clock
	logger       *slog.Logger
}

func NewBookingCommands(
	catalog *engine.Catalog,
	ledger *engine.Ledger,
	availability *engine.Availability,
	queue *engine.Queue,
	publisher engine.ReassignmentPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		catalog:      catalog,
		ledger:       ledger,
		availability: availability,
		queue:        queue,
		publisher:    publisher,
		clock:        clk,
		logger:       logger,
	}
}

func (b *bookingCommandsImpl) Book(ctx context.Context, params BookParams) (*BookResult, error) {
	if params.Requester == "" {
		return nil, ErrEmptyRequester
	}
	interval, err := buildInterval(params.Class, params.Date, params.Start, params.End)
	if err != nil {
		return nil, err
	}
	minCapacity := params.MinCapacity
	if minCapacity < 1 {
		minCapacity = 1
	}

	if params.ResourceID != nil {
		return b.bookExplicit(ctx, params, interval, minCapacity)
	}
	return b.bookAuto(ctx, params, interval, minCapacity)
}

func (b *bookingCommandsImpl) bookExplicit(ctx context.Context, params BookParams, interval reservation.Interval, minCapacity int) (*BookResult, error) {
	unit, err := b.catalog.FindByID(ctx, *params.ResourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}
	if unit.Class() != params.Class {
		return nil, ErrClassMismatch
	}
	if !unit.Active() || unit.Capacity() < minCapacity {
		return nil, ErrResourceUnavailable
	}

	rsv, err := b.ledger.TryHold(ctx, unit.ID(), params.Requester, interval)
	if err != nil {
		if errors.Is(err, engine.ErrHoldConflict) {
			return nil, ErrResourceUnavailable
		}
		return nil, err
	}

	return &BookResult{
		Status:      StatusReserved,
		Reservation: newReservationView(rsv, unit.Class()),
	}, nil
}

func (b *bookingCommandsImpl) bookAuto(ctx context.Context, params BookParams, interval reservation.Interval, minCapacity int) (*BookResult, error) {
	free, err := b.availability.FreeUnits(ctx, params.Class, interval, minCapacity)
	if err != nil {
		return nil, err
	}

	// The availability snapshot may be stale against concurrent
	// bookings; walk the sorted candidates until one hold sticks. The
	// walk is bounded by the snapshot length, so Book always
	// terminates.
	for _, unit := range free {
		rsv, err := b.ledger.TryHold(ctx, unit.ID(), params.Requester, interval)
		if errors.Is(err, engine.ErrHoldConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &BookResult{
			Status:      StatusReserved,
			Reservation: newReservationView(rsv, unit.Class()),
		}, nil
	}

	ticket, err := waiting.NewTicket(params.Class, params.Requester, interval, minCapacity, b.clock.Now())
	if err != nil {
		return nil, err
	}
	position, err := b.queue.Enqueue(ctx, ticket)
	if err != nil {
		return nil, err
	}

	b.logger.Info("booking queued",
		"ticket_id", ticket.ID(), "class", params.Class, "position", position)

	return &BookResult{
		Status: StatusQueued,
		Ticket: newTicketView(ticket, position),
	}, nil
}

func (b *bookingCommandsImpl) Release(ctx context.Context, reservationID uuid.UUID) error {
	_, err := b.ledger.Release(ctx, reservationID, b.reassignFreed)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrReservationNotFound):
			return ErrReservationNotFound
		case errors.Is(err, engine.ErrReservationNotReleased):
			return ErrAlreadyReleased
		default:
			return err
		}
	}
	return nil
}

func (b *bookingCommandsImpl) CancelWaiting(ctx context.Context, ticketID uuid.UUID) error {
	if err := b.queue.Remove(ctx, ticketID); err != nil {
		if errors.Is(err, engine.ErrTicketNotFound) {
			return ErrTicketNotFound
		}
		return err
	}
	return nil
}

// reassignFreed runs inside Release, while the freed resource's lock
// is still held, so the unit cannot be handed to a fresh Book call and
// a waiting ticket at the same time. The freed unit is offered to the
// first compatible ticket only; the queue is not re-optimized on every
// release.
func (b *bookingCommandsImpl) reassignFreed(ctx context.Context, ev engine.ReleasedEvent, tx engine.ReassignTx) {
	unit, err := b.catalog.FindByID(ctx, ev.ResourceID)
	if err != nil {
		b.logger.Error("reassignment skipped: resource lookup failed",
			"resource_id", ev.ResourceID, "error", err)
		return
	}
	if !unit.Active() {
		return
	}

	held, err := b.ledger.ActiveFor(ctx, ev.ResourceID, ev.FreedInterval.Date())
	if err != nil {
		b.logger.Error("reassignment skipped: ledger read failed",
			"resource_id", ev.ResourceID, "error", err)
		return
	}
	satisfiable := func(t *waiting.Ticket) bool {
		for _, h := range held {
			if h.Interval().Overlaps(t.DesiredInterval()) {
				return false
			}
		}
		return true
	}

	for {
		ticket, err := b.queue.PeekCompatible(ctx, unit, satisfiable)
		if err != nil {
			b.logger.Error("reassignment skipped: queue scan failed",
				"resource_id", ev.ResourceID, "error", err)
			return
		}
		if ticket == nil {
			return
		}

		rsv, err := tx.Claim(ctx, ticket.Requester(), ticket.DesiredInterval())
		if err != nil {
			b.logger.Error("reassignment claim failed",
				"ticket_id", ticket.ID(), "resource_id", ev.ResourceID, "error", err)
			return
		}

		if err := b.queue.Remove(ctx, ticket.ID()); err != nil {
			lostRace := errors.Is(err, engine.ErrTicketNotFound)
			if !lostRace {
				// A store failure leaves the ticket queued; retrying
				// here would spin under the resource lock, so give up
				// and let the next release drain it.
				b.logger.Error("reassignment aborted: ticket removal failed",
					"ticket_id", ticket.ID(), "resource_id", ev.ResourceID, "error", err)
			}
			if unclaimErr := tx.Unclaim(ctx, rsv.ID()); unclaimErr != nil {
				b.logger.Error("failed to undo claim after failed ticket removal",
					"reservation_id", rsv.ID(), "error", unclaimErr)
				return
			}
			if !lostRace {
				return
			}
			// Lost the race against a concurrent cancellation: offer
			// the unit to the next ticket.
			continue
		}

		occurred := engine.ReassignmentOccurred{
			TicketID:      ticket.ID(),
			ResourceID:    ev.ResourceID,
			ReservationID: rsv.ID(),
			Requester:     ticket.Requester(),
			Class:         unit.Class(),
		}
		if err := b.publisher.Publish(ctx, occurred); err != nil {
			// Fire-and-forget: a lost event delays the notification,
			// it never rolls back the reassignment.
			b.logger.Warn("failed to publish reassignment event",
				"ticket_id", ticket.ID(), "error", err)
		}
		return
	}
}

func buildInterval(class resource.Class, date time.Time, start, end *time.Time) (reservation.Interval, error) {
	if !class.IsValid() {
		return reservation.Interval{}, ErrInvalidClass
	}
	if date.IsZero() {
		return reservation.Interval{}, ErrInvalidInterval
	}
	if class.WholeDay() {
		return reservation.NewWholeDay(date), nil
	}
	if start == nil || end == nil {
		return reservation.Interval{}, ErrInvalidInterval
	}
	iv, err := reservation.NewWindow(date, *start, *end)
	if err != nil {
		return reservation.Interval{}, ErrInvalidInterval
	}
	return iv, nil
}
