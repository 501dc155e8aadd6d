package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/notification"
)

// CreateRequest defines parameters for booking a slot.
type CreateRequest struct {
	PatientID       string
	DoctorID        string
	Date            string // "YYYY-MM-DD"
	StartTime       string // "HH:MM"
	DurationMinutes int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string, requesterUserID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, next Status, actorUserID string, isAdmin bool) (*Booking, error)
}

type service struct {
	repo     Repository
	windows  availability.Service
	doctors  doctor.Service
	notifier notification.Service
	log      *zap.Logger
}

func NewService(repo Repository, windows availability.Service, doctors doctor.Service, notifier notification.Service, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		windows:  windows,
		doctors:  doctors,
		notifier: notifier,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// Duration is validated up front so the caller gets the duration error
	// even when the doctor, date, or availability is also wrong.
	if req.DurationMinutes != 60 && req.DurationMinutes != 120 {
		return nil, ErrInvalidDuration
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrPastDate
	}

	doc, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	windows, err := s.windows.ListForDoctorDate(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListForDoctorDate(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}

	endTime, err := ResolveSlot(SlotRequest{StartTime: req.StartTime, DurationMinutes: req.DurationMinutes}, windows, existing)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		DoctorID:        req.DoctorID,
		DoctorUserID:    doc.UserID,
		PatientID:       req.PatientID,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Re-read for the joined doctor and patient names.
	created, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(created.DoctorUserID, notification.KindBookingRequested,
		fmt.Sprintf("%s requested a booking on %s at %s", created.PatientName, req.Date, created.StartTime),
		created.ID)

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id string, requesterUserID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && requesterUserID != b.PatientID && requesterUserID != b.DoctorUserID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, next Status, actorUserID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isDoctor := actorUserID == b.DoctorUserID
	isPatient := actorUserID == b.PatientID
	if !isDoctor && !isPatient && !isAdmin {
		return nil, ErrPermissionDenied
	}

	switch next {
	case StatusAccepted, StatusRejected:
		if !isDoctor && !isAdmin {
			return nil, ErrPermissionDenied
		}
		if b.Status != StatusPending {
			return nil, ErrInvalidTransition
		}
	case StatusCancelled:
		// Either party may cancel a pending or accepted booking.
		if !b.Status.blocks() {
			return nil, ErrInvalidTransition
		}
	default:
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	b.Status = next
	b.UpdatedAt = time.Now().UTC()

	s.notifyStatusChange(b, actorUserID)

	return b, nil
}

// notifyStatusChange tells the participant who did not initiate the change.
func (s *service) notifyStatusChange(b *Booking, actorUserID string) {
	var kind notification.Kind
	switch b.Status {
	case StatusAccepted:
		kind = notification.KindBookingAccepted
	case StatusRejected:
		kind = notification.KindBookingRejected
	case StatusCancelled:
		kind = notification.KindBookingCancelled
	default:
		return
	}

	date := b.Date.Format("2006-01-02")
	if actorUserID != b.PatientID {
		s.notifyAsync(b.PatientID, kind,
			fmt.Sprintf("your booking with %s on %s at %s is %s", b.DoctorName, date, b.StartTime, b.Status),
			b.ID)
	}
	if actorUserID != b.DoctorUserID {
		s.notifyAsync(b.DoctorUserID, kind,
			fmt.Sprintf("booking with %s on %s at %s is %s", b.PatientName, date, b.StartTime, b.Status),
			b.ID)
	}
}

// notifyAsync records the notification off the request path; delivery is
// best effort and failures only get logged.
func (s *service) notifyAsync(userID string, kind notification.Kind, message string, bookingID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.notifier.Notify(ctx, userID, kind, message, &bookingID); err != nil {
			s.log.Warn("failed to record booking notification",
				zap.String("user_id", userID),
				zap.String("booking_id", bookingID),
				zap.Error(err))
		}
	}()
}
