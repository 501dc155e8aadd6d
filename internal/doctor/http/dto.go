package http

import (
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/request"
	spHttp "github.com/clinicdesk/clinic-booking-backend/internal/specialty/http"
)

// ListDoctorsRequest defines query parameters for listing doctors.
type ListDoctorsRequest struct {
	request.ListParams
	SpecialtyID string `form:"specialty_id" binding:"omitempty,uuid"`
	Keyword     string `form:"keyword"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=full_name created_at"`
}

// Validate performs custom validation for ListDoctorsRequest.
func (r *ListDoctorsRequest) Validate() error {
	return nil
}

type DoctorResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	FullName      string              `json:"full_name"`
	Specialty     spHttp.SpecialtyTag `json:"specialty"`
	Title         string              `json:"title"`
	Bio           string              `json:"bio"`
	ClinicAddress string              `json:"clinic_address"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// DoctorTag is a brief representation of a doctor.
type DoctorTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewResponse(d *doctor.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		FullName:      d.FullName,
		Specialty:     spHttp.SpecialtyTag{ID: d.SpecialtyID, Name: d.SpecialtyName},
		Title:         d.Title,
		Bio:           d.Bio,
		ClinicAddress: d.ClinicAddress,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type CreateDoctorRequest struct {
	SpecialtyID   string `json:"specialty_id" binding:"required,uuid"`
	Title         string `json:"title"`
	Bio           string `json:"bio"`
	ClinicAddress string `json:"clinic_address"`
}

type UpdateDoctorRequest struct {
	SpecialtyID   *string `json:"specialty_id" binding:"omitempty,uuid"`
	Title         *string `json:"title"`
	Bio           *string `json:"bio"`
	ClinicAddress *string `json:"clinic_address"`
}
