package doctor

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("doctor not found")
	ErrProfileExists    = errors.New("doctor profile already exists for this user")
	ErrInvalidSpecialty = errors.New("invalid specialty_id")
	ErrNotDoctorRole    = errors.New("user does not have the doctor role")
	ErrPermissionDenied = errors.New("permission denied")
)

// Doctor is the public profile of a doctor-role user. It is the unit
// patients browse and book against; availability windows and bookings
// reference it by ID.
type Doctor struct {
	ID            string
	UserID        string
	FullName      string // denormalized from the owning user account
	SpecialtyID   string
	SpecialtyName string
	Title         string
	Bio           string
	ClinicAddress string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing doctors.
type Filter struct {
	SpecialtyID string
	Keyword     string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
