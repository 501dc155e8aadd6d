package notification

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("notification not found")
	ErrMessageRequired = errors.New("message is required")
)

// Kind classifies what a notification is about.
type Kind string

const (
	KindBookingRequested Kind = "booking_requested"
	KindBookingAccepted  Kind = "booking_accepted"
	KindBookingRejected  Kind = "booking_rejected"
	KindBookingCancelled Kind = "booking_cancelled"
)

// Notification is an in-app message for a single user. Delivery is pull:
// clients poll their list; there is no push transport here.
type Notification struct {
	ID        string
	UserID    string
	Kind      Kind
	Message   string
	BookingID *string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
