package model

import (
	"time"

	"github.com/google/uuid"
)

// DateRangesOverlap reports whether [aFrom, aUntil] and [bFrom, bUntil]
// overlap. Bounds are inclusive on both ends: [24th, 26th] and [26th, 28th]
// overlap on the 26th.
func DateRangesOverlap(aFrom, aUntil, bFrom, bUntil time.Time) bool {
	return !aFrom.After(bUntil) && !bFrom.After(aUntil)
}

// PeakUsage returns the maximum simultaneous held quantity across [from, until]
// given the reservations that overlap the window. Reservations not in the held
// state and the reservation with ID exclude (if non-nil) are ignored.
//
// Committed quantity only changes at reservation boundaries, so it suffices to
// sum usage at `from` and at each held reservation's own start date inside the
// window.
func PeakUsage(reservations []Reservation, from, until time.Time, exclude *uuid.UUID) int {
	points := []time.Time{from}
	for _, r := range reservations {
		if r.ReservedFrom.After(from) && !r.ReservedFrom.After(until) {
			points = append(points, r.ReservedFrom)
		}
	}

	peak := 0
	for _, t := range points {
		sum := 0
		for _, r := range reservations {
			if r.Status != ReservationHeld {
				continue
			}
			if exclude != nil && r.ID == *exclude {
				continue
			}
			if !r.ReservedFrom.After(t) && !t.After(r.ReservedUntil) {
				sum += r.Quantity
			}
		}
		if sum > peak {
			peak = sum
		}
	}
	return peak
}
