package request

import (
	"slotbook/internal/domain/resource"
	"slotbook/internal/usecase"
)

type AddResourceRequest struct {
	Class    string `json:"class" binding:"required"`
	Label    string `json:"label" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

func (r AddResourceRequest) ToParams() usecase.AddResourceParams {
	return usecase.AddResourceParams{
		Class:    resource.Class(r.Class),
		Label:    r.Label,
		Capacity: r.Capacity,
	}
}
