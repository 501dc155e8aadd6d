package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	notifications map[string]*Notification
	nextID        int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{notifications: make(map[string]*Notification)}
}

func (r *fakeRepo) Create(_ context.Context, n *Notification) error {
	r.nextID++
	n.ID = fmt.Sprintf("ntf-%d", r.nextID)
	n.CreatedAt = time.Now().UTC()
	clone := *n
	r.notifications[n.ID] = &clone
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Notification, int, error) {
	var list []*Notification
	for _, n := range r.notifications {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.UnreadOnly && n.ReadAt != nil {
			continue
		}
		list = append(list, n)
	}
	return list, len(list), nil
}

func (r *fakeRepo) MarkRead(_ context.Context, id, userID string) error {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID || n.ReadAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	n.ReadAt = &now
	return nil
}

func (r *fakeRepo) MarkAllRead(_ context.Context, userID string) error {
	now := time.Now().UTC()
	for _, n := range r.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			n.ReadAt = &now
		}
	}
	return nil
}

func TestNotify(t *testing.T) {
	svc := NewService(newFakeRepo())
	bookingID := "bk-1"

	n, err := svc.Notify(context.Background(), "user-1", KindBookingRequested, "new booking request", &bookingID)
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, KindBookingRequested, n.Kind)
	assert.Nil(t, n.ReadAt)

	_, err = svc.Notify(context.Background(), "user-1", KindBookingRequested, "   ", nil)
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestListAndMarkRead(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	n1, err := svc.Notify(ctx, "user-1", KindBookingAccepted, "booking accepted", nil)
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "user-1", KindBookingCancelled, "booking cancelled", nil)
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "user-2", KindBookingRejected, "booking rejected", nil)
	require.NoError(t, err)

	list, total, err := svc.List(ctx, Filter{UserID: "user-1", UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(ctx, n1.ID, "user-1"))

	// Marking twice, or someone else's notification, reads as not found.
	assert.ErrorIs(t, svc.MarkRead(ctx, n1.ID, "user-1"), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, "ntf-2", "user-2"), ErrNotFound)

	list, _, err = svc.List(ctx, Filter{UserID: "user-1", UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMarkAllRead(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, "user-1", KindBookingRequested, "new booking request", nil)
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(ctx, "user-1"))

	list, _, err := svc.List(ctx, Filter{UserID: "user-1", UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, list)
}
