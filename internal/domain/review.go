package domain

import "time"

// Review represents a customer review tied to a completed booking.
// At most one review may exist per (booking, tour) pair.
type Review struct {
	ID        int64
	BookingID int64
	TourID    int64
	UserID    int64
	Rating    int // 1..5
	Title     string
	Comment   string

	// IsVerified is forced true when the linked booking is confirmed or
	// completed at write time
	IsVerified bool

	// IsApproved moderation flag, set by staff
	IsApproved bool

	CreatedAt time.Time
}
