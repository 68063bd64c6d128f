package engine

import (
	"context"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"

	"github.com/google/uuid"
)

// Storage collaborators. The engine defines the transactional
// semantics it needs; the storage format belongs to the implementation
// (in-memory, postgres, redis for the waitlist).

type CatalogStore interface {
	Insert(ctx context.Context, r *resource.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	ListActive(ctx context.Context, class resource.Class) ([]*resource.Resource, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type LedgerStore interface {
	Insert(ctx context.Context, rsv *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	MarkReleased(ctx context.Context, id uuid.UUID) error
	// ActiveFor returns the ACTIVE reservations held on a resource for
	// one calendar date.
	ActiveFor(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error)
	ListByRequester(ctx context.Context, requester string) ([]*reservation.Reservation, error)
}

type QueueStore interface {
	Append(ctx context.Context, t *waiting.Ticket) error
	// ListByClass returns tickets in FIFO order (enqueue order).
	ListByClass(ctx context.Context, class resource.Class) ([]*waiting.Ticket, error)
	// Delete removes a ticket and reports whether it was still present.
	// Exactly one of two concurrent deleters observes true.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReassignmentPublisher hands ReassignmentOccurred to the notification
// collaborator. Delivery is fire-and-forget: a lost event delays a
// notification, it never corrupts engine state.
type ReassignmentPublisher interface {
	Publish(ctx context.Context, ev ReassignmentOccurred) error
}
