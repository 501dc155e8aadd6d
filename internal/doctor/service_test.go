package doctor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-booking-backend/internal/specialty"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

type fakeRepo struct {
	byID     map[string]*Doctor
	byUserID map[string]*Doctor
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:     make(map[string]*Doctor),
		byUserID: make(map[string]*Doctor),
	}
}

func (r *fakeRepo) Create(_ context.Context, d *Doctor) error {
	if _, ok := r.byUserID[d.UserID]; ok {
		return ErrProfileExists
	}
	r.nextID++
	d.ID = fmt.Sprintf("doc-%d", r.nextID)
	clone := *d
	r.byID[d.ID] = &clone
	r.byUserID[d.UserID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Doctor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID string) (*Doctor, error) {
	d, ok := r.byUserID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Doctor, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) Update(_ context.Context, d *Doctor) error {
	stored, ok := r.byID[d.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *d
	return nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) Register(context.Context, string, string, string, user.Role) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) Login(context.Context, string, string) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(context.Context, user.Filter) ([]*user.User, int, error) {
	panic("not used")
}

func (f *fakeUsers) Update(context.Context, string, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

type fakeSpecialties struct {
	specialties map[string]*specialty.Specialty
}

func (f *fakeSpecialties) Create(context.Context, specialty.CreateRequest) (*specialty.Specialty, error) {
	panic("not used")
}

func (f *fakeSpecialties) GetByID(_ context.Context, id string) (*specialty.Specialty, error) {
	sp, ok := f.specialties[id]
	if !ok {
		return nil, specialty.ErrNotFound
	}
	return sp, nil
}

func (f *fakeSpecialties) List(context.Context, specialty.Filter) ([]*specialty.Specialty, int, error) {
	panic("not used")
}

func (f *fakeSpecialties) Update(context.Context, string, specialty.UpdateRequest) (*specialty.Specialty, error) {
	panic("not used")
}

func (f *fakeSpecialties) Delete(context.Context, string) error { panic("not used") }

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	users := &fakeUsers{users: map[string]*user.User{
		"user-doc": {ID: "user-doc", Role: user.RoleDoctor, FullName: "Dr. Chen"},
		"user-pat": {ID: "user-pat", Role: user.RolePatient, FullName: "Pat Doe"},
	}}
	specialties := &fakeSpecialties{specialties: map[string]*specialty.Specialty{
		"sp-derm": {ID: "sp-derm", Name: "Dermatology"},
	}}
	return NewService(repo, users, specialties), repo
}

func TestCreateProfile(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Create(context.Background(), CreateRequest{
		UserID:      "user-doc",
		SpecialtyID: "sp-derm",
		Title:       "  MD ",
		Bio:         "Skin specialist",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "MD", d.Title)
	assert.Equal(t, "sp-derm", d.SpecialtyID)
}

func TestCreateProfileValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{UserID: "user-pat", SpecialtyID: "sp-derm"})
	assert.ErrorIs(t, err, ErrNotDoctorRole)

	_, err = svc.Create(ctx, CreateRequest{UserID: "user-missing", SpecialtyID: "sp-derm"})
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = svc.Create(ctx, CreateRequest{UserID: "user-doc", SpecialtyID: "sp-missing"})
	assert.ErrorIs(t, err, ErrInvalidSpecialty)
}

func TestCreateProfileOnlyOnce(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{UserID: "user-doc", SpecialtyID: "sp-derm"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{UserID: "user-doc", SpecialtyID: "sp-derm"})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestUpdateProfilePermissions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateRequest{UserID: "user-doc", SpecialtyID: "sp-derm"})
	require.NoError(t, err)

	title := "Consultant"
	_, err = svc.Update(ctx, d.ID, UpdateRequest{Title: &title}, "user-other", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.Update(ctx, d.ID, UpdateRequest{Title: &title}, "user-doc", false)
	require.NoError(t, err)
	assert.Equal(t, "Consultant", got.Title)

	bio := "Updated by admin"
	got, err = svc.Update(ctx, d.ID, UpdateRequest{Bio: &bio}, "user-admin", true)
	require.NoError(t, err)
	assert.Equal(t, "Updated by admin", got.Bio)

	bad := "sp-missing"
	_, err = svc.Update(ctx, d.ID, UpdateRequest{SpecialtyID: &bad}, "user-doc", false)
	assert.ErrorIs(t, err, ErrInvalidSpecialty)
}
