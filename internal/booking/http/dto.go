package http

import (
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/booking"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/request"
)

// CreateBookingRequest defines the JSON body for booking a slot. Duration is
// validated by the service so the error matches the one returned when other
// slot checks fail.
type CreateBookingRequest struct {
	DoctorID        string `json:"doctor_id" binding:"required,uuid"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
}

// UpdateStatusRequest defines the JSON body for a status change. Pending is
// not listed: a booking can never return to pending.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected cancelled"`
}

// ListBookingsRequest defines query parameters for listing bookings. The
// doctor_id and patient_id filters only apply to admin callers; everyone else
// is scoped to their own bookings.
type ListBookingsRequest struct {
	request.ListParams
	DoctorID  string `form:"doctor_id" binding:"omitempty,uuid"`
	PatientID string `form:"patient_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending accepted rejected cancelled"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=date created_at"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	PatientID       string    `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		DoctorID:        b.DoctorID,
		DoctorName:      b.DoctorName,
		PatientID:       b.PatientID,
		PatientName:     b.PatientName,
		Date:            b.Date.Format("2006-01-02"),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
