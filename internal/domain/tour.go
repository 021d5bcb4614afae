package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tour represents a bookable tour in the catalog.
// The booking core only reads tours; writes go through staff management flows.
type Tour struct {
	ID              int64
	DestinationID   int64
	OrganizerID     int64
	Title           string
	Description     string
	MaxParticipants int
	AvailableFrom   time.Time // inclusive, date precision
	AvailableUntil  time.Time // inclusive, date precision
	PricePerPerson  decimal.Decimal
	Currency        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if the tour is active and the availability window
// covers the given moment (both bounds inclusive, date precision)
func (t *Tour) IsBookable(now time.Time) bool {
	if !t.IsActive {
		return false
	}
	today := dateOnly(now)
	return !today.Before(dateOnly(t.AvailableFrom)) && !today.After(dateOnly(t.AvailableUntil))
}

// HasEnded returns true if the tour's availability window is in the past
func (t *Tour) HasEnded(now time.Time) bool {
	return dateOnly(now).After(dateOnly(t.AvailableUntil))
}

// DaysUntilStart returns the number of full days until the tour starts.
// Negative if the start date has passed.
func (t *Tour) DaysUntilStart(now time.Time) int {
	diff := dateOnly(t.AvailableFrom).Sub(dateOnly(now))
	return int(diff.Hours() / 24)
}

// TotalPriceFor computes the price for the given number of participants
func (t *Tour) TotalPriceFor(participants int) decimal.Decimal {
	return t.PricePerPerson.Mul(decimal.NewFromInt(int64(participants)))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
