package api

import (
	"errors"
	"net/http"

	"slotbook/internal/domain/resource"
	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	queries usecase.BookingQueries
}

func NewAvailabilityHandler(queries usecase.BookingQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: queries}
}

// @Summary List free units
// @Description List the units of a class free for the given interval, ordered by label
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param class query string true "Resource class"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string false "Window start (RFC3339), required for time-windowed classes"
// @Param end query string false "Window end (RFC3339), required for time-windowed classes"
// @Param min_capacity query int false "Minimum capacity"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) FreeUnits(c *gin.Context) {
	var req reqdto.FreeUnitsRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	params, err := req.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	views, err := h.queries.FreeUnits(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidClass):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown resource class",
			})
		case errors.Is(err, usecase.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid availability interval",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}

// @Summary List the waitlist of a class
// @Description List pending waiting tickets of a class in FIFO order with their positions
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param class query string true "Resource class"
// @Success 200 {array} resdto.TicketResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /waitlist [get]
func (h *AvailabilityHandler) Waitlist(c *gin.Context) {
	class := resource.Class(c.Query("class"))

	views, err := h.queries.Waitlist(c.Request.Context(), class)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidClass):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown resource class",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	out := make([]*resdto.TicketResponse, len(views))
	for i, v := range views {
		out[i] = resdto.FromTicketView(v)
	}
	c.JSON(http.StatusOK, out)
}
