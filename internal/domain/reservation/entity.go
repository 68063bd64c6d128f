package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRequester  = errors.New("requester cannot be empty")
	ErrAlreadyReleased = errors.New("reservation already released")
)

// Reservation is a held claim on one resource for one interval. It is
// created only by a successful hold and is never deleted; release flips
// the status and keeps the row for the reporting side.
type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	requester  string
	interval   Interval
	status     Status
	createdAt  time.Time
}

func NewReservation(resourceID uuid.UUID, requester string, interval Interval, now time.Time) (*Reservation, error) {
	if requester == "" {
		return nil, ErrEmptyRequester
	}

	return &Reservation{
		id:         uuid.New(),
		resourceID: resourceID,
		requester:  requester,
		interval:   interval,
		status:     StatusActive,
		createdAt:  now,
	}, nil
}

func Reconstruct(id, resourceID uuid.UUID, requester string, interval Interval, status Status, createdAt time.Time) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		requester:  requester,
		interval:   interval,
		status:     status,
		createdAt:  createdAt,
	}
}

// Release transitions ACTIVE -> RELEASED exactly once. A second call
// is an error, not a no-op: callers drive queue draining off the
// transition and must see it happen only once.
func (r *Reservation) Release() error {
	if r.status == StatusReleased {
		return ErrAlreadyReleased
	}
	r.status = StatusReleased
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) ResourceID() uuid.UUID { return r.resourceID }
func (r *Reservation) Requester() string     { return r.requester }
func (r *Reservation) Interval() Interval    { return r.interval }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
