package waiting

import (
	"errors"
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"

	"github.com/google/uuid"
)

var ErrEmptyRequester = errors.New("requester cannot be empty")

// Ticket is an unsatisfied booking request parked per class in FIFO
// order. It lives until a release converts it into a reservation or
// the requester cancels it.
type Ticket struct {
	id              uuid.UUID
	class           resource.Class
	requester       string
	desiredInterval reservation.Interval
	desiredCapacity int
	enqueuedAt      time.Time
}

func NewTicket(class resource.Class, requester string, desiredInterval reservation.Interval, desiredCapacity int, now time.Time) (*Ticket, error) {
	if requester == "" {
		return nil, ErrEmptyRequester
	}
	if !class.IsValid() {
		return nil, resource.ErrInvalidClass
	}
	if desiredCapacity < 1 {
		desiredCapacity = 1
	}

	return &Ticket{
		id:              uuid.New(),
		class:           class,
		requester:       requester,
		desiredInterval: desiredInterval,
		desiredCapacity: desiredCapacity,
		enqueuedAt:      now,
	}, nil
}

func Reconstruct(id uuid.UUID, class resource.Class, requester string, desiredInterval reservation.Interval, desiredCapacity int, enqueuedAt time.Time) *Ticket {
	return &Ticket{
		id:              id,
		class:           class,
		requester:       requester,
		desiredInterval: desiredInterval,
		desiredCapacity: desiredCapacity,
		enqueuedAt:      enqueuedAt,
	}
}

// FitsCapacity reports whether a freed unit is large enough for this
// ticket. Interval satisfiability is checked against the ledger by the
// caller; capacity is a property of the ticket alone.
func (t *Ticket) FitsCapacity(unitCapacity int) bool {
	return t.desiredCapacity <= unitCapacity
}

func (t *Ticket) ID() uuid.UUID                         { return t.id }
func (t *Ticket) Class() resource.Class                 { return t.class }
func (t *Ticket) Requester() string                     { return t.requester }
func (t *Ticket) DesiredInterval() reservation.Interval { return t.desiredInterval }
func (t *Ticket) DesiredCapacity() int                  { return t.desiredCapacity }
func (t *Ticket) EnqueuedAt() time.Time                 { return t.enqueuedAt }
