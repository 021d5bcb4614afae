package domain

import "time"

// EventType lifecycle event name delivered to the external notifier
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
	EventPaymentCompleted EventType = "payment_completed"
)

// Event is a state-change notification emitted by the booking core.
// The external notifier renders it into user-facing messages; the core never
// formats message bodies.
type Event struct {
	Type             EventType
	BookingReference string
	UserID           int64
	TourID           int64
	TransactionID    *string // set for payment events
	OccurredAt       time.Time
}
