package doctor

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicdesk/clinic-booking-backend/internal/specialty"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

type CreateRequest struct {
	UserID        string
	SpecialtyID   string
	Title         string
	Bio           string
	ClinicAddress string
}

type UpdateRequest struct {
	SpecialtyID   *string
	Title         *string
	Bio           *string
	ClinicAddress *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Doctor, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*Doctor, error)
	List(ctx context.Context, filter Filter) ([]*Doctor, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isAdmin bool) (*Doctor, error)
}

type service struct {
	repo        Repository
	userService user.Service
	spService   specialty.Service
}

func NewService(repo Repository, userService user.Service, spService specialty.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
		spService:   spService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Doctor, error) {
	// Only doctor-role accounts get a profile.
	u, err := s.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleDoctor {
		return nil, ErrNotDoctorRole
	}

	// Validation: Check if Specialty exists
	if _, err := s.spService.GetByID(ctx, req.SpecialtyID); err != nil {
		if errors.Is(err, specialty.ErrNotFound) {
			return nil, ErrInvalidSpecialty
		}
		return nil, err
	}

	d := &Doctor{
		UserID:        req.UserID,
		SpecialtyID:   req.SpecialtyID,
		Title:         strings.TrimSpace(req.Title),
		Bio:           strings.TrimSpace(req.Bio),
		ClinicAddress: strings.TrimSpace(req.ClinicAddress),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	// Re-read so the joined name fields are populated.
	return s.repo.GetByID(ctx, d.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Doctor, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isAdmin bool) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A doctor may only edit their own profile; admins may edit anyone's.
	if !isAdmin && d.UserID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	if req.SpecialtyID != nil {
		if _, err := s.spService.GetByID(ctx, *req.SpecialtyID); err != nil {
			if errors.Is(err, specialty.ErrNotFound) {
				return nil, ErrInvalidSpecialty
			}
			return nil, err
		}
		d.SpecialtyID = *req.SpecialtyID
	}
	if req.Title != nil {
		d.Title = strings.TrimSpace(*req.Title)
	}
	if req.Bio != nil {
		d.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.ClinicAddress != nil {
		d.ClinicAddress = strings.TrimSpace(*req.ClinicAddress)
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, d.ID)
}
