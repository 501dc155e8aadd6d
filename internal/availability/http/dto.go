package http

import (
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/request"
)

// ListWindowsRequest defines query parameters for listing availability windows.
type ListWindowsRequest struct {
	request.ListParams
	DoctorID string     `form:"doctor_id" binding:"required,uuid"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// Validate performs custom validation for ListWindowsRequest.
func (r *ListWindowsRequest) Validate() error {
	if r.DateFrom != nil && r.DateTo != nil {
		if r.DateFrom.After(*r.DateTo) {
			return availability.ErrInvalidTimeRange
		}
	}
	return nil
}

type WindowResponse struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

func NewWindowResponse(w *availability.Window) WindowResponse {
	return WindowResponse{
		ID:        w.ID,
		DoctorID:  w.DoctorID,
		Date:      w.Date.Format("2006-01-02"),
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		CreatedAt: w.CreatedAt,
	}
}

// CreateWindowRequest declares a new availability window for the
// authenticated doctor.
type CreateWindowRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
