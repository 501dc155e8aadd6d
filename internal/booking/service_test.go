package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/notification"
)

type fakeRepo struct {
	bookings map[string]*Booking
	nextID   int
}

func newFakeRepo(seed ...*Booking) *fakeRepo {
	r := &fakeRepo{bookings: make(map[string]*Booking)}
	for _, b := range seed {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.nextID++
	b.ID = fmt.Sprintf("bk-%d", r.nextID)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) ListForDoctorDate(_ context.Context, doctorID string, date time.Time) ([]*Booking, error) {
	var list []*Booking
	for _, b := range r.bookings {
		if b.DoctorID == doctorID && b.Date.Equal(date) {
			list = append(list, b)
		}
	}
	return list, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

type fakeWindows struct {
	windows []*availability.Window
}

func (f *fakeWindows) Create(context.Context, availability.CreateRequest) (*availability.Window, error) {
	panic("not used")
}

func (f *fakeWindows) GetByID(context.Context, string) (*availability.Window, error) {
	panic("not used")
}

func (f *fakeWindows) ListForDoctorDate(context.Context, string, time.Time) ([]*availability.Window, error) {
	return f.windows, nil
}

func (f *fakeWindows) List(context.Context, availability.Filter) ([]*availability.Window, int, error) {
	panic("not used")
}

func (f *fakeWindows) Delete(context.Context, string, string, bool) error {
	panic("not used")
}

type fakeDoctors struct {
	doctors map[string]*doctor.Doctor
}

func (f *fakeDoctors) Create(context.Context, doctor.CreateRequest) (*doctor.Doctor, error) {
	panic("not used")
}

func (f *fakeDoctors) GetByID(_ context.Context, id string) (*doctor.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctor.ErrNotFound
	}
	return d, nil
}

func (f *fakeDoctors) GetByUserID(context.Context, string) (*doctor.Doctor, error) {
	panic("not used")
}

func (f *fakeDoctors) List(context.Context, doctor.Filter) ([]*doctor.Doctor, int, error) {
	panic("not used")
}

func (f *fakeDoctors) Update(context.Context, string, doctor.UpdateRequest, string, bool) (*doctor.Doctor, error) {
	panic("not used")
}

type notified struct {
	userID string
	kind   notification.Kind
}

type fakeNotifier struct {
	calls chan notified
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan notified, 8)}
}

func (f *fakeNotifier) Notify(_ context.Context, userID string, kind notification.Kind, _ string, _ *string) (*notification.Notification, error) {
	f.calls <- notified{userID: userID, kind: kind}
	return &notification.Notification{}, nil
}

func (f *fakeNotifier) List(context.Context, notification.Filter) ([]*notification.Notification, int, error) {
	panic("not used")
}

func (f *fakeNotifier) MarkRead(context.Context, string, string) error { panic("not used") }

func (f *fakeNotifier) MarkAllRead(context.Context, string) error { panic("not used") }

func (f *fakeNotifier) await(t *testing.T) notified {
	t.Helper()
	select {
	case n := <-f.calls:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification")
		return notified{}
	}
}

const (
	testDoctorID     = "doc-1"
	testDoctorUserID = "user-doc"
	testPatientID    = "user-pat"
	futureDate       = "2030-05-20"
)

func newTestService(repo *fakeRepo, ws []*availability.Window, notifier *fakeNotifier) Service {
	doctors := &fakeDoctors{doctors: map[string]*doctor.Doctor{
		testDoctorID: {ID: testDoctorID, UserID: testDoctorUserID, FullName: "Dr. Chen"},
	}}
	return NewService(repo, &fakeWindows{windows: ws}, doctors, notifier, zap.NewNop())
}

func TestCreateBooksSlot(t *testing.T) {
	repo := newFakeRepo()
	notifier := newFakeNotifier()
	svc := newTestService(repo, windows([2]string{"09:00", "17:00"}), notifier)

	b, err := svc.Create(context.Background(), CreateRequest{
		PatientID:       testPatientID,
		DoctorID:        testDoctorID,
		Date:            futureDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "10:00", b.StartTime)
	assert.Equal(t, "11:00", b.EndTime)
	assert.Equal(t, futureDate, b.Date.Format("2006-01-02"))

	n := notifier.await(t)
	assert.Equal(t, testDoctorUserID, n.userID)
	assert.Equal(t, notification.KindBookingRequested, n.kind)
}

func TestCreateRejectsBadInput(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, windows([2]string{"09:00", "17:00"}), newFakeNotifier())

	base := CreateRequest{
		PatientID:       testPatientID,
		DoctorID:        testDoctorID,
		Date:            futureDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}

	cases := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"unsupported duration", func(r *CreateRequest) { r.DurationMinutes = 90 }, ErrInvalidDuration},
		{"malformed date", func(r *CreateRequest) { r.Date = "20-05-2030" }, ErrInvalidDate},
		{"past date", func(r *CreateRequest) { r.Date = "2020-01-01" }, ErrPastDate},
		{"unknown doctor", func(r *CreateRequest) { r.DoctorID = "doc-missing" }, ErrDoctorNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, repo.bookings)
		})
	}
}

func TestCreateRejectsConflictingSlot(t *testing.T) {
	repo := newFakeRepo()
	notifier := newFakeNotifier()
	svc := newTestService(repo, windows([2]string{"09:00", "17:00"}), notifier)

	req := CreateRequest{
		PatientID:       testPatientID,
		DoctorID:        testDoctorID,
		Date:            futureDate,
		StartTime:       "10:00",
		DurationMinutes: 120,
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	notifier.await(t)

	req.StartTime = "11:00"
	req.DurationMinutes = 60
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreateAllowsRebookingFreedSlot(t *testing.T) {
	repo := newFakeRepo()
	notifier := newFakeNotifier()
	svc := newTestService(repo, windows([2]string{"09:00", "17:00"}), notifier)

	req := CreateRequest{
		PatientID:       testPatientID,
		DoctorID:        testDoctorID,
		Date:            futureDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}
	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	notifier.await(t)

	_, err = svc.UpdateStatus(context.Background(), first.ID, StatusRejected, testDoctorUserID, false)
	require.NoError(t, err)
	notifier.await(t)

	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func seedBooking(status Status) *Booking {
	date, _ := time.ParseInLocation("2006-01-02", futureDate, time.UTC)
	return &Booking{
		ID:              "bk-seed",
		DoctorID:        testDoctorID,
		DoctorUserID:    testDoctorUserID,
		DoctorName:      "Dr. Chen",
		PatientID:       testPatientID,
		PatientName:     "Pat Doe",
		Date:            date,
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		name     string
		current  Status
		next     Status
		actor    string
		isAdmin  bool
		wantErr  error
		notifies []string
	}{
		{"doctor accepts pending", StatusPending, StatusAccepted, testDoctorUserID, false, nil, []string{testPatientID}},
		{"doctor rejects pending", StatusPending, StatusRejected, testDoctorUserID, false, nil, []string{testPatientID}},
		// An admin is neither participant, so both sides hear about it.
		{"admin accepts pending", StatusPending, StatusAccepted, "user-admin", true, nil, []string{testPatientID, testDoctorUserID}},
		{"patient cancels pending", StatusPending, StatusCancelled, testPatientID, false, nil, []string{testDoctorUserID}},
		{"patient cancels accepted", StatusAccepted, StatusCancelled, testPatientID, false, nil, []string{testDoctorUserID}},
		{"doctor cancels accepted", StatusAccepted, StatusCancelled, testDoctorUserID, false, nil, []string{testPatientID}},
		{"patient cannot accept", StatusPending, StatusAccepted, testPatientID, false, ErrPermissionDenied, nil},
		{"patient cannot reject", StatusPending, StatusRejected, testPatientID, false, ErrPermissionDenied, nil},
		{"stranger cannot touch", StatusPending, StatusCancelled, "user-other", false, ErrPermissionDenied, nil},
		{"cannot accept twice", StatusAccepted, StatusAccepted, testDoctorUserID, false, ErrInvalidTransition, nil},
		{"cannot reject accepted", StatusAccepted, StatusRejected, testDoctorUserID, false, ErrInvalidTransition, nil},
		{"cannot cancel rejected", StatusRejected, StatusCancelled, testPatientID, false, ErrInvalidTransition, nil},
		{"cannot cancel twice", StatusCancelled, StatusCancelled, testPatientID, false, ErrInvalidTransition, nil},
		{"cannot return to pending", StatusAccepted, StatusPending, testDoctorUserID, false, ErrInvalidStatus, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo(seedBooking(tc.current))
			notifier := newFakeNotifier()
			svc := newTestService(repo, nil, notifier)

			b, err := svc.UpdateStatus(context.Background(), "bk-seed", tc.next, tc.actor, tc.isAdmin)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				stored, _ := repo.GetByID(context.Background(), "bk-seed")
				assert.Equal(t, tc.current, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.next, b.Status)

			got := make([]string, len(tc.notifies))
			for i := range tc.notifies {
				got[i] = notifier.await(t).userID
			}
			assert.ElementsMatch(t, tc.notifies, got)
		})
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil, newFakeNotifier())
	_, err := svc.UpdateStatus(context.Background(), "bk-missing", StatusCancelled, testPatientID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDPermissions(t *testing.T) {
	repo := newFakeRepo(seedBooking(StatusPending))
	svc := newTestService(repo, nil, newFakeNotifier())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "bk-seed", testPatientID, false)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "bk-seed", testDoctorUserID, false)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "bk-seed", "user-admin", true)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "bk-seed", "user-other", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
