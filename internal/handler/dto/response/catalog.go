package response

import (
	"slotbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID       uuid.UUID `json:"id"`
	Class    string    `json:"class"`
	Label    string    `json:"label"`
	Capacity int       `json:"capacity"`
	Active   bool      `json:"active"`
}

func FromResourceView(rm *usecase.ResourceView) *ResourceResponse {
	resp := &ResourceResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromResourceViews(rms []*usecase.ResourceView) []*ResourceResponse {
	out := make([]*ResourceResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromResourceView(rm)
	}
	return out
}
