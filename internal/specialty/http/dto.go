package http

import (
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/request"
	"github.com/clinicdesk/clinic-booking-backend/internal/specialty"
)

// ListSpecialtiesRequest defines query parameters for listing specialties.
type ListSpecialtiesRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

// Validate performs custom validation for ListSpecialtiesRequest.
func (r *ListSpecialtiesRequest) Validate() error {
	return nil
}

type SpecialtyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpecialtyTag is a brief representation of a specialty.
type SpecialtyTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewResponse(sp *specialty.Specialty) SpecialtyResponse {
	return SpecialtyResponse{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		CreatedAt:   sp.CreatedAt,
	}
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateSpecialtyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
