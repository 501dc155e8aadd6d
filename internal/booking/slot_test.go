package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
)

func windows(ranges ...[2]string) []*availability.Window {
	ws := make([]*availability.Window, len(ranges))
	for i, r := range ranges {
		ws[i] = &availability.Window{StartTime: r[0], EndTime: r[1]}
	}
	return ws
}

func booked(status Status, start, end string) *Booking {
	return &Booking{Status: status, StartTime: start, EndTime: end}
}

func TestResolveSlotAccepts(t *testing.T) {
	cases := []struct {
		name     string
		req      SlotRequest
		windows  []*availability.Window
		existing []*Booking
		wantEnd  string
	}{
		{
			name:    "open window",
			req:     SlotRequest{StartTime: "09:00", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "12:00"}),
			wantEnd: "10:00",
		},
		{
			name:    "fills window exactly",
			req:     SlotRequest{StartTime: "09:00", DurationMinutes: 120},
			windows: windows([2]string{"09:00", "11:00"}),
			wantEnd: "11:00",
		},
		{
			name:    "ends at window boundary",
			req:     SlotRequest{StartTime: "11:00", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "12:00"}),
			wantEnd: "12:00",
		},
		{
			name:     "back-to-back after existing booking",
			req:      SlotRequest{StartTime: "10:00", DurationMinutes: 60},
			windows:  windows([2]string{"09:00", "12:00"}),
			existing: []*Booking{booked(StatusPending, "09:00", "10:00")},
			wantEnd:  "11:00",
		},
		{
			name:     "back-to-back before existing booking",
			req:      SlotRequest{StartTime: "09:00", DurationMinutes: 60},
			windows:  windows([2]string{"09:00", "12:00"}),
			existing: []*Booking{booked(StatusAccepted, "10:00", "11:00")},
			wantEnd:  "10:00",
		},
		{
			name:    "second window of the day",
			req:     SlotRequest{StartTime: "14:00", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "12:00"}, [2]string{"13:00", "17:00"}),
			wantEnd: "15:00",
		},
		{
			name:    "rejected booking frees its slot",
			req:     SlotRequest{StartTime: "10:00", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "12:00"}),
			existing: []*Booking{
				booked(StatusRejected, "10:00", "11:00"),
				booked(StatusCancelled, "09:30", "11:30"),
			},
			wantEnd: "11:00",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end, err := ResolveSlot(tc.req, tc.windows, tc.existing)
			require.NoError(t, err)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestResolveSlotRejects(t *testing.T) {
	cases := []struct {
		name     string
		req      SlotRequest
		windows  []*availability.Window
		existing []*Booking
		wantErr  error
	}{
		{
			name:    "unsupported duration",
			req:     SlotRequest{StartTime: "09:00", DurationMinutes: 90},
			windows: windows([2]string{"09:00", "12:00"}),
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "zero duration",
			req:     SlotRequest{StartTime: "09:00", DurationMinutes: 0},
			windows: windows([2]string{"09:00", "12:00"}),
			wantErr: ErrInvalidDuration,
		},
		{
			// Duration is checked before anything else, even with no windows.
			name:    "bad duration reported before missing availability",
			req:     SlotRequest{StartTime: "09:00", DurationMinutes: 45},
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "no availability declared",
			req:     SlotRequest{StartTime: "09:00", DurationMinutes: 60},
			wantErr: ErrNoAvailability,
		},
		{
			name:    "overruns window end",
			req:     SlotRequest{StartTime: "11:00", DurationMinutes: 120},
			windows: windows([2]string{"09:00", "12:00"}),
			wantErr: ErrOutsideAvailability,
		},
		{
			name:    "starts before window",
			req:     SlotRequest{StartTime: "08:30", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "12:00"}),
			wantErr: ErrOutsideAvailability,
		},
		{
			// One window ends where the next begins; a slot must still fit a
			// single window.
			name:    "spans two adjacent windows",
			req:     SlotRequest{StartTime: "09:30", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}),
			wantErr: ErrOutsideAvailability,
		},
		{
			name:     "overlaps accepted booking",
			req:      SlotRequest{StartTime: "10:30", DurationMinutes: 60},
			windows:  windows([2]string{"09:00", "12:00"}),
			existing: []*Booking{booked(StatusAccepted, "10:00", "11:00")},
			wantErr:  ErrSlotConflict,
		},
		{
			name:     "overlaps pending booking",
			req:      SlotRequest{StartTime: "09:00", DurationMinutes: 120},
			windows:  windows([2]string{"09:00", "12:00"}),
			existing: []*Booking{booked(StatusPending, "10:00", "11:00")},
			wantErr:  ErrSlotConflict,
		},
		{
			name:     "identical slot already taken",
			req:      SlotRequest{StartTime: "10:00", DurationMinutes: 60},
			windows:  windows([2]string{"09:00", "12:00"}),
			existing: []*Booking{booked(StatusPending, "10:00", "11:00")},
			wantErr:  ErrSlotConflict,
		},
		{
			name:    "malformed start time",
			req:     SlotRequest{StartTime: "9:00", DurationMinutes: 60},
			windows: windows([2]string{"09:00", "12:00"}),
			wantErr: ErrInvalidTime,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveSlot(tc.req, tc.windows, tc.existing)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
