package domain

// SpotsRemaining computes how many spots are left on a tour given its active
// bookings. excludeBookingID removes one booking from the sum (used when
// re-validating an existing booking on update); pass 0 to exclude nothing.
//
// Inactive bookings in the slice are skipped, so callers may pass unfiltered
// result sets.
func SpotsRemaining(tour *Tour, bookings []*Booking, excludeBookingID int64) int {
	booked := 0
	for _, b := range bookings {
		if excludeBookingID != 0 && b.ID == excludeBookingID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		booked += b.Participants
	}

	remaining := tour.MaxParticipants - booked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BookedParticipants sums participant counts across active bookings
func BookedParticipants(bookings []*Booking) int {
	booked := 0
	for _, b := range bookings {
		if b.IsActive() {
			booked += b.Participants
		}
	}
	return booked
}
