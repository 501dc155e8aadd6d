package specialty

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("specialty not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNameAlreadyUsed = errors.New("specialty name already used")
	ErrInUse           = errors.New("specialty is referenced by doctors")
)

// Specialty represents a medical specialty doctors register under
// (e.g., Cardiology, Dermatology).
type Specialty struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Filter defines parameters for listing specialties.
type Filter struct {
	Keyword   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
