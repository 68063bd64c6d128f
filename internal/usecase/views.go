package usecase

import (
	"time"

	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"
	"slotbook/internal/domain/waiting"

	"github.com/google/uuid"
)

// Views are the read models handed to the display layer. The engine
// does not format dates or build UI state; it exposes plain values.

type ReservationView struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Class      string
	Requester  string
	Date       string
	Start      *time.Time
	End        *time.Time
	WholeDay   bool
	Status     string
	CreatedAt  time.Time
}

type TicketView struct {
	ID              uuid.UUID
	Class           string
	Requester       string
	Date            string
	Start           *time.Time
	End             *time.Time
	WholeDay        bool
	DesiredCapacity int
	EnqueuedAt      time.Time
	Position        int
}

type ResourceView struct {
	ID       uuid.UUID
	Class    string
	Label    string
	Capacity int
	Active   bool
}

func newReservationView(rsv *reservation.Reservation, class resource.Class) *ReservationView {
	iv := rsv.Interval()
	v := &ReservationView{
		ID:         rsv.ID(),
		ResourceID: rsv.ResourceID(),
		Class:      class.String(),
		Requester:  rsv.Requester(),
		Date:       iv.DateKey(),
		WholeDay:   iv.WholeDay(),
		Status:     rsv.Status().String(),
		CreatedAt:  rsv.CreatedAt(),
	}
	if !iv.WholeDay() {
		start, end := iv.Start(), iv.End()
		v.Start, v.End = &start, &end
	}
	return v
}

func newTicketView(t *waiting.Ticket, position int) *TicketView {
	iv := t.DesiredInterval()
	v := &TicketView{
		ID:              t.ID(),
		Class:           t.Class().String(),
		Requester:       t.Requester(),
		Date:            iv.DateKey(),
		WholeDay:        iv.WholeDay(),
		DesiredCapacity: t.DesiredCapacity(),
		EnqueuedAt:      t.EnqueuedAt(),
		Position:        position,
	}
	if !iv.WholeDay() {
		start, end := iv.Start(), iv.End()
		v.Start, v.End = &start, &end
	}
	return v
}

func newResourceView(r *resource.Resource) *ResourceView {
	return &ResourceView{
		ID:       r.ID(),
		Class:    r.Class().String(),
		Label:    r.Label(),
		Capacity: r.Capacity(),
		Active:   r.Active(),
	}
}
