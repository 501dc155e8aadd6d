package availability

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("availability window not found")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrWindowOverlap    = errors.New("window overlaps an existing availability window")
	ErrPermissionDenied = errors.New("permission denied")
	ErrPastDate         = errors.New("cannot declare availability in the past")
)

// Window is a contiguous interval on a single day during which a doctor
// accepts bookings. Windows are immutable: a doctor deletes and recreates
// rather than edits. Clock fields are zero-padded 24-hour "HH:MM".
type Window struct {
	ID        string
	DoctorID  string
	Date      time.Time // calendar day, midnight UTC
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

// Filter defines parameters for listing availability windows.
type Filter struct {
	DoctorID string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
