package engine

import (
	"slotbook/internal/domain/reservation"
	"slotbook/internal/domain/resource"

	"github.com/google/uuid"
)

// ReleasedEvent is returned by Ledger.Release and drives queue
// draining. Callers rely on getting it exactly once per reservation.
type ReleasedEvent struct {
	ReservationID uuid.UUID
	ResourceID    uuid.UUID
	Class         resource.Class
	FreedInterval reservation.Interval
}

// ReassignmentOccurred is emitted when a freed unit is handed to a
// waiting ticket.
type ReassignmentOccurred struct {
	TicketID      uuid.UUID      `json:"ticket_id"`
	ResourceID    uuid.UUID      `json:"resource_id"`
	ReservationID uuid.UUID      `json:"reservation_id"`
	Requester     string         `json:"requester"`
	Class         resource.Class `json:"class"`
}
