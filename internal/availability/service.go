package availability

import (
	"context"
	"time"

	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/clock"
)

type CreateRequest struct {
	DoctorID  string
	Date      time.Time
	StartTime string
	EndTime   string
}

type Service interface {
	// Create declares a new window for the doctor. Windows are immutable;
	// there is no update operation.
	Create(ctx context.Context, req CreateRequest) (*Window, error)
	GetByID(ctx context.Context, id string) (*Window, error)
	ListForDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]*Window, error)
	List(ctx context.Context, filter Filter) ([]*Window, int, error)
	Delete(ctx context.Context, id string, ownerDoctorID string, isAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Window, error) {
	startMin, err := clock.ParseMinutes(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := clock.ParseMinutes(req.EndTime)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, ErrInvalidTimeRange
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date.Before(today) {
		return nil, ErrPastDate
	}

	// Windows on the same day must not overlap each other. Touching
	// windows (end == start) are fine.
	existing, err := s.repo.ListForDoctorDate(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		ws, err := clock.ParseMinutes(w.StartTime)
		if err != nil {
			return nil, err
		}
		we, err := clock.ParseMinutes(w.EndTime)
		if err != nil {
			return nil, err
		}
		if clock.Overlaps(startMin, endMin, ws, we) {
			return nil, ErrWindowOverlap
		}
	}

	w := &Window{
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		StartTime: clock.FormatMinutes(startMin),
		EndTime:   clock.FormatMinutes(endMin),
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Window, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListForDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]*Window, error) {
	return s.repo.ListForDoctorDate(ctx, doctorID, date)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Window, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string, ownerDoctorID string, isAdmin bool) error {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && w.DoctorID != ownerDoctorID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
