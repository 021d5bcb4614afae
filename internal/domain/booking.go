package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusRefunded  BookingStatus = "refunded"
)

// BookingPaymentStatus represents the aggregate payment state of a booking.
// It is derived from the sum of completed payments and is never set directly
// outside the payment ledger recomputation.
type BookingPaymentStatus string

const (
	PaymentStatusUnpaid   BookingPaymentStatus = "unpaid"
	PaymentStatusPartial  BookingPaymentStatus = "partial"
	PaymentStatusPaid     BookingPaymentStatus = "paid"
	PaymentStatusRefunded BookingPaymentStatus = "refunded"
)

// Booking represents a tour booking
type Booking struct {
	ID            int64
	Token         uuid.UUID // opaque external identifier
	Reference     string    // human-readable, BK-YYYYMMDD-XXXX
	UserID        int64
	TourID        int64
	Participants  int
	Status        BookingStatus
	PaymentStatus BookingPaymentStatus
	TotalPrice    decimal.Decimal
	Currency      string

	ContactName     string
	ContactEmail    string
	ContactPhone    string
	SpecialRequests *string

	CancellationReason *string
	CancelledBy        *int64

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CompletedAt *time.Time
}

// IsActive returns true if the booking counts against tour capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are accepted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusRefunded
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled at the given
// moment: it must still be active and the tour must start at least
// CancellationNoticeDays full days later
func (b *Booking) CanBeCancelled(tourStart time.Time, now time.Time) bool {
	if !b.IsActive() {
		return false
	}
	diff := dateOnly(tourStart).Sub(dateOnly(now))
	return int(diff.Hours()/24) >= CancellationNoticeDays
}

// IsFullyPaid returns true if the booking's aggregate payment status is paid
func (b *Booking) IsFullyPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// BookingParticipant holds per-traveler details owned by one booking.
// Rows are cascade-deleted with the booking.
type BookingParticipant struct {
	ID             int64
	BookingID      int64
	FullName       string
	Email          *string
	Phone          *string
	PassportNumber *string
	DietaryNotes   *string
	MedicalNotes   *string
}

// TourBookingsFilter фильтр для выборки бронирований тура
type TourBookingsFilter struct {
	TourID          int64          // Обязательный параметр
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые/завершённые бронирования
}
