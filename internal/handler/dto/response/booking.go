package response

import (
	"time"

	"slotbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID uuid.UUID  `json:"resourceId"`
	Class      string     `json:"class"`
	Requester  string     `json:"requester"`
	Date       string     `json:"date"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	WholeDay   bool       `json:"wholeDay"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type TicketResponse struct {
	ID              uuid.UUID  `json:"id"`
	Class           string     `json:"class"`
	Requester       string     `json:"requester"`
	Date            string     `json:"date"`
	Start           *time.Time `json:"start,omitempty"`
	End             *time.Time `json:"end,omitempty"`
	WholeDay        bool       `json:"wholeDay"`
	DesiredCapacity int        `json:"desiredCapacity"`
	EnqueuedAt      time.Time  `json:"enqueuedAt"`
	Position        int        `json:"position"`
}

// BookResponse is the terminal state of a booking request: reserved
// carries the reservation, queued carries the waitlist ticket.
type BookResponse struct {
	Status      string               `json:"status"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
	Ticket      *TicketResponse      `json:"ticket,omitempty"`
}

func FromReservationView(rm *usecase.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromTicketView(rm *usecase.TicketView) *TicketResponse {
	resp := &TicketResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromBookResult(result *usecase.BookResult) *BookResponse {
	resp := &BookResponse{Status: string(result.Status)}
	if result.Reservation != nil {
		resp.Reservation = FromReservationView(result.Reservation)
	}
	if result.Ticket != nil {
		resp.Ticket = FromTicketView(result.Ticket)
	}
	return resp
}
