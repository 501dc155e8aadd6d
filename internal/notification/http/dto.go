package http

import (
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/notification"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/request"
)

// ListNotificationsRequest defines query parameters for listing notifications.
type ListNotificationsRequest struct {
	request.ListParams
	UnreadOnly bool `form:"unread_only"`
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Message   string     `json:"message"`
	BookingID *string    `json:"booking_id"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		BookingID: n.BookingID,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
