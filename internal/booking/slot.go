package booking

import (
	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/clock"
)

// SlotRequest is the resolver's view of a booking attempt: a start clock and
// one of the two supported consultation lengths.
type SlotRequest struct {
	StartTime       string
	DurationMinutes int
}

// ResolveSlot decides whether a requested slot may be booked, given the
// doctor's declared windows and existing bookings for the same date. It is
// pure: the caller fetches both lists and, on success, persists the booking
// with the returned end time.
//
// Rules, in order:
//  1. Duration must be exactly 60 or 120 minutes.
//  2. The requested interval must lie entirely within a single availability
//     window (half-open, so ending exactly at a window's end is fine).
//  3. The interval must not overlap any pending or accepted booking.
//     Rejected and cancelled bookings are ignored so freed slots can be
//     re-booked. Back-to-back bookings do not conflict.
func ResolveSlot(req SlotRequest, windows []*availability.Window, existing []*Booking) (endTime string, err error) {
	if req.DurationMinutes != 60 && req.DurationMinutes != 120 {
		return "", ErrInvalidDuration
	}

	start, err := clock.ParseMinutes(req.StartTime)
	if err != nil {
		return "", ErrInvalidTime
	}
	end := start + req.DurationMinutes

	if len(windows) == 0 {
		return "", ErrNoAvailability
	}

	contained := false
	for _, w := range windows {
		ws, err := clock.ParseMinutes(w.StartTime)
		if err != nil {
			return "", ErrInvalidTime
		}
		we, err := clock.ParseMinutes(w.EndTime)
		if err != nil {
			return "", ErrInvalidTime
		}
		if ws <= start && end <= we {
			contained = true
			break
		}
	}
	if !contained {
		return "", ErrOutsideAvailability
	}

	for _, b := range existing {
		if !b.Status.blocks() {
			continue
		}
		bs, err := clock.ParseMinutes(b.StartTime)
		if err != nil {
			return "", ErrInvalidTime
		}
		be, err := clock.ParseMinutes(b.EndTime)
		if err != nil {
			return "", ErrInvalidTime
		}
		if clock.Overlaps(start, end, bs, be) {
			return "", ErrSlotConflict
		}
	}

	return clock.FormatMinutes(end), nil
}
