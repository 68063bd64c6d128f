package engine

import (
	"context"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/keymutex"

	"github.com/google/uuid"
)

var (
	ErrHoldConflict           = errs.New("hold conflicts with an active reservation")
	ErrReservationNotFound    = errs.New("reservation not found")
	ErrReservationNotReleased = errs.New("reservation already released")
)

// ReassignTx lets the release callback hand the freed resource to a
// queued requester while the per-resource lock is still held, so the
// unit is never visible as free to a concurrent Book and claimed by
// the drain at the same time.
type ReassignTx interface {
	Claim(ctx context.Context, requester string, interval reservation.Interval) (*reservation.Reservation, error)
	// Unclaim undoes a Claim whose ticket was lost to a concurrent
	// cancellation.
	Unclaim(ctx context.Context, reservationID uuid.UUID) error
}

// ReassignFunc runs inside Release, under the freed resource's lock.
type ReassignFunc func(ctx context.Context, ev ReleasedEvent, tx ReassignTx)

// Ledger is the authoritative record of holds. TryHold's
// check-and-insert is one atomic step per resource id, serialized by a
// keyed mutex; that is the property everything else leans on.
type Ledger struct {
	store   LedgerStore
	catalog *Catalog
	locks   *keymutex.KeyMutex
	clock   clock.Clock
}

func NewLedger(store LedgerStore, catalog *Catalog, clk clock.Clock) *Ledger {
	return &Ledger{
		store:   store,
		catalog: catalog,
		locks:   keymutex.New(),
		clock:   clk,
	}
}

// TryHold atomically checks the requested interval against all ACTIVE
// reservations on the resource and inserts a new one if none overlap.
func (l *Ledger) TryHold(ctx context.Context, resourceID uuid.UUID, requester string, interval reservation.Interval) (*reservation.Reservation, error) {
	unlock := l.locks.Lock(resourceID.String())
	defer unlock()

	return l.holdLocked(ctx, resourceID, requester, interval)
}

func (l *Ledger) holdLocked(ctx context.Context, resourceID uuid.UUID, requester string, interval reservation.Interval) (*reservation.Reservation, error) {
	active, err := l.store.ActiveFor(ctx, resourceID, interval.Date())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load active reservations")
	}
	for _, held := range active {
		if held.Interval().Overlaps(interval) {
			return nil, ErrHoldConflict
		}
	}

	rsv, err := reservation.NewReservation(resourceID, requester, interval, l.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := l.store.Insert(ctx, rsv); err != nil {
		// A store with its own overlap guard (postgres) may still
		// refuse the insert; surface that as the same conflict.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrHoldConflict
		}
		return nil, errs.Wrap(err, "failed to insert reservation")
	}
	return rsv, nil
}

// Release marks the reservation RELEASED and, while still holding the
// resource lock, invokes reassign (if non-nil) with the freed
// interval. A repeated release returns ErrReservationNotReleased so
// the caller drains the queue exactly once.
func (l *Ledger) Release(ctx context.Context, reservationID uuid.UUID, reassign ReassignFunc) (ReleasedEvent, error) {
	rsv, err := l.findByID(ctx, reservationID)
	if err != nil {
		return ReleasedEvent{}, err
	}

	unlock := l.locks.Lock(rsv.ResourceID().String())
	defer unlock()

	// Re-read under the lock: a concurrent release may have won.
	rsv, err = l.findByID(ctx, reservationID)
	if err != nil {
		return ReleasedEvent{}, err
	}
	if err := rsv.Release(); err != nil {
		return ReleasedEvent{}, ErrReservationNotReleased
	}
	if err := l.store.MarkReleased(ctx, reservationID); err != nil {
		return ReleasedEvent{}, errs.Wrap(err, "failed to mark reservation released")
	}

	ev := ReleasedEvent{
		ReservationID: reservationID,
		ResourceID:    rsv.ResourceID(),
		FreedInterval: rsv.Interval(),
	}
	if res, err := l.catalog.FindByID(ctx, rsv.ResourceID()); err == nil {
		ev.Class = res.Class()
	}

	if reassign != nil {
		reassign(ctx, ev, &reassignTx{ledger: l, resourceID: rsv.ResourceID()})
	}
	return ev, nil
}

// ActiveFor is the read side used by the availability index. It runs
// without the resource lock; staleness is tolerated and resolved by
// the orchestrator's next-candidate retry.
func (l *Ledger) ActiveFor(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	return l.store.ActiveFor(ctx, resourceID, date)
}

func (l *Ledger) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return l.findByID(ctx, id)
}

func (l *Ledger) ListByRequester(ctx context.Context, requester string) ([]*reservation.Reservation, error) {
	return l.store.ListByRequester(ctx, requester)
}

func (l *Ledger) findByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rsv, err := l.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return rsv, nil
}

type reassignTx struct {
	ledger     *Ledger
	resourceID uuid.UUID
}

func (t *reassignTx) Claim(ctx context.Context, requester string, interval reservation.Interval) (*reservation.Reservation, error) {
	return t.ledger.holdLocked(ctx, t.resourceID, requester, interval)
}

func (t *reassignTx) Unclaim(ctx context.Context, reservationID uuid.UUID) error {
	return t.ledger.store.MarkReleased(ctx, reservationID)
}
