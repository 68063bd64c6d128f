package api

import (
	"errors"
	"net/http"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands usecase.BookingCommands
	queries  usecase.BookingQueries
}

func NewBookingHandler(commands usecase.BookingCommands, queries usecase.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: commands,
		queries:  queries,
	}
}

// @Summary Book a resource
// @Description Reserve a unit of the requested class, or join the waitlist when the class is fully booked
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookRequest true "Booking request"
// @Success 201 {object} resdto.BookResponse "Reserved"
// @Success 202 {object} resdto.BookResponse "Queued on the waitlist"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Book(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.BookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams(requester)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.commands.Book(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errors.Is(err, usecase.ErrResourceUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Resource is not available for the requested interval",
			})
		case errors.Is(err, usecase.ErrClassMismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Resource does not belong to the requested class",
			})
		case errors.Is(err, usecase.ErrInvalidClass):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown resource class",
			})
		case errors.Is(err, usecase.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking interval",
			})
		case errors.Is(err, usecase.ErrEmptyRequester):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Requester is required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	// Joining the waitlist is a success, not a failure: the request was
	// accepted and will be satisfied by a future release.
	status := http.StatusCreated
	if result.Status == usecase.StatusQueued {
		status = http.StatusAccepted
	}
	c.JSON(status, resdto.FromBookResult(result))
}

// @Summary Release a reservation
// @Description Release an active reservation; the freed unit is offered to the waitlist before returning to the open pool
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Release(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.commands.Release(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, usecase.ErrAlreadyReleased):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation was already released",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.queries.GetReservation(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List my reservations
// @Description List all reservations held by the authenticated requester
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.queries.ListRequesterReservations(c.Request.Context(), requester)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	out := make([]*resdto.ReservationResponse, len(views))
	for i, v := range views {
		out[i] = resdto.FromReservationView(v)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Cancel a waiting ticket
// @Description Remove a ticket from the waitlist before it is reassigned
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /waitlist/{id} [delete]
func (h *BookingHandler) CancelWaiting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ticket ID format",
		})
		return
	}

	if err := h.commands.CancelWaiting(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Waiting ticket not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
