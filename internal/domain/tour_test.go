package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testTour() *Tour {
	return &Tour{
		ID:              1,
		MaxParticipants: 10,
		AvailableFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AvailableUntil:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PricePerPerson:  decimal.RequireFromString("150.50"),
		Currency:        "EUR",
		IsActive:        true,
	}
}

func TestTour_IsBookable(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"внутри окна", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), true},
		{"первый день включительно", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"последний день включительно", time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC), true},
		{"до начала окна", time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC), false},
		{"после окончания окна", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testTour().IsBookable(tt.now))
		})
	}
}

func TestTour_IsBookable_Inactive(t *testing.T) {
	tour := testTour()
	tour.IsActive = false

	assert.False(t, tour.IsBookable(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
}

func TestTour_HasEnded(t *testing.T) {
	tour := testTour()

	assert.False(t, tour.HasEnded(time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)))
	assert.True(t, tour.HasEnded(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTour_DaysUntilStart(t *testing.T) {
	tour := testTour()

	assert.Equal(t, 2, tour.DaysUntilStart(time.Date(2025, 5, 30, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, tour.DaysUntilStart(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, -5, tour.DaysUntilStart(time.Date(2025, 6, 6, 8, 0, 0, 0, time.UTC)))
}

func TestTour_TotalPriceFor(t *testing.T) {
	tour := testTour()

	assert.True(t, decimal.RequireFromString("451.50").Equal(tour.TotalPriceFor(3)))
	assert.True(t, decimal.Zero.Equal(tour.TotalPriceFor(0)))
}
