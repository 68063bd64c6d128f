package request

import (
	"errors"
	"time"

	"slotbook/internal/domain/resource"
	"slotbook/internal/usecase"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

type BookRequest struct {
	Class       string     `json:"class" binding:"required"`
	Date        string     `json:"date" binding:"required"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	MinCapacity int        `json:"min_capacity,omitempty"`
	ResourceID  *uuid.UUID `json:"resource_id,omitempty"`
}

func (r BookRequest) ToParams(requester string) (usecase.BookParams, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return usecase.BookParams{}, errInvalidDate
	}

	return usecase.BookParams{
		Class:       resource.Class(r.Class),
		Requester:   requester,
		Date:        date,
		Start:       r.Start,
		End:         r.End,
		MinCapacity: r.MinCapacity,
		ResourceID:  r.ResourceID,
	}, nil
}

type FreeUnitsRequest struct {
	Class       string     `form:"class" binding:"required"`
	Date        string     `form:"date" binding:"required"`
	Start       *time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00"`
	End         *time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00"`
	MinCapacity int        `form:"min_capacity"`
}

func (r FreeUnitsRequest) ToParams() (usecase.FreeUnitsParams, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return usecase.FreeUnitsParams{}, errInvalidDate
	}

	return usecase.FreeUnitsParams{
		Class:       resource.Class(r.Class),
		Date:        date,
		Start:       r.Start,
		End:         r.End,
		MinCapacity: r.MinCapacity,
	}, nil
}
