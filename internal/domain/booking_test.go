package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
		{StatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.IsActive())
		})
	}
}

func TestBooking_CanBeConfirmed(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeConfirmed())
	assert.False(t, (&Booking{Status: StatusConfirmed}).CanBeConfirmed())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeConfirmed())
}

func TestBooking_CanBeCompleted(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCompleted())
	assert.False(t, (&Booking{Status: StatusPending}).CanBeCompleted())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCompleted())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    BookingStatus
		tourStart time.Time
		want      bool
	}{
		{
			name:      "ровно два дня до начала — можно",
			status:    StatusPending,
			tourStart: time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "завтра — уже поздно",
			status:    StatusPending,
			tourStart: time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "тур уже начался",
			status:    StatusConfirmed,
			tourStart: time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "далеко до начала, подтверждённое",
			status:    StatusConfirmed,
			tourStart: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "отменённое нельзя отменить повторно",
			status:    StatusCancelled,
			tourStart: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "завершённое нельзя отменить",
			status:    StatusCompleted,
			tourStart: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.CanBeCancelled(tt.tourStart, now))
		})
	}
}

func TestBooking_CanBeCancelled_TimeOfDayIgnored(t *testing.T) {
	// Сравнение идёт по календарным дням: позднее время суток у обеих дат
	// не должно влиять на результат.
	b := &Booking{Status: StatusPending}
	now := time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)
	tourStart := time.Date(2025, 6, 12, 0, 0, 1, 0, time.UTC)

	assert.True(t, b.CanBeCancelled(tourStart, now))
}
