package booking

import (
	"net/http"
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrDoctorNotFound      = apperror.New(http.StatusNotFound, "doctor not found")
	ErrInvalidDuration     = apperror.New(http.StatusBadRequest, "duration must be 60 or 120 minutes")
	ErrNoAvailability      = apperror.New(http.StatusBadRequest, "doctor has no availability on this date")
	ErrOutsideAvailability = apperror.New(http.StatusBadRequest, "booking does not fit within the doctor's availability")
	ErrSlotConflict        = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidDate         = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTime         = apperror.New(http.StatusBadRequest, "invalid start time, expected zero-padded 24-hour HH:MM")
	ErrPastDate            = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition   = apperror.New(http.StatusBadRequest, "booking status cannot change this way")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// blocks reports whether a booking in this status still occupies its slot.
// Rejected and cancelled bookings free their slot for re-booking.
func (s Status) blocks() bool {
	return s == StatusPending || s == StatusAccepted
}

// Booking is a patient's reservation of part of a doctor's availability
// window. Its time window is fixed at creation and never rescheduled in
// place; only the status changes afterwards.
type Booking struct {
	ID              string
	DoctorID        string
	DoctorName      string
	DoctorUserID    string
	PatientID       string
	PatientName     string
	Date            time.Time // calendar day, midnight UTC
	StartTime       string    // "HH:MM"
	EndTime         string    // "HH:MM"
	DurationMinutes int
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	DoctorID  string
	PatientID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
