package api

import (
	"errors"
	"net/http"

	"slotbook/internal/domain/resource"
	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	commands usecase.CatalogCommands
}

func NewCatalogHandler(commands usecase.CatalogCommands) *CatalogHandler {
	return &CatalogHandler{commands: commands}
}

// @Summary Add a resource
// @Description Register a new bookable unit in the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddResourceRequest true "Resource definition"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /resources [post]
func (h *CatalogHandler) AddResource(c *gin.Context) {
	var req reqdto.AddResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.AddResource(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResourceAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "A resource with this label already exists in the class",
			})
		case errors.Is(err, resource.ErrInvalidClass),
			errors.Is(err, resource.ErrEmptyLabel),
			errors.Is(err, resource.ErrLabelTooLong),
			errors.Is(err, resource.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromResourceView(view))
}

// @Summary Retire a resource
// @Description Remove a unit from availability; existing reservations are untouched
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *CatalogHandler) RetireResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	if err := h.commands.RetireResource(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
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
