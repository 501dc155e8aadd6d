package notification

import (
	"context"
	"strings"
)

type Service interface {
	// Notify records an in-app notification for the user.
	Notify(ctx context.Context, userID string, kind Kind, message string, bookingID *string) (*Notification, error)
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID string, kind Kind, message string, bookingID *string) (*Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}

	n := &Notification{
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		BookingID: bookingID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
