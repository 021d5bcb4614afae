package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotsRemaining(t *testing.T) {
	tour := &Tour{MaxParticipants: 10}

	bookings := []*Booking{
		{ID: 1, Status: StatusPending, Participants: 3},
		{ID: 2, Status: StatusConfirmed, Participants: 4},
		{ID: 3, Status: StatusCancelled, Participants: 5}, // не занимает места
	}

	assert.Equal(t, 3, SpotsRemaining(tour, bookings, 0))
}

func TestSpotsRemaining_ExcludeBooking(t *testing.T) {
	tour := &Tour{MaxParticipants: 10}

	bookings := []*Booking{
		{ID: 1, Status: StatusConfirmed, Participants: 6},
		{ID: 2, Status: StatusPending, Participants: 2},
	}

	assert.Equal(t, 8, SpotsRemaining(tour, bookings, 1))
}

func TestSpotsRemaining_NeverNegative(t *testing.T) {
	// Вместимость могла быть уменьшена после создания бронирований
	tour := &Tour{MaxParticipants: 5}

	bookings := []*Booking{
		{ID: 1, Status: StatusConfirmed, Participants: 7},
	}

	assert.Equal(t, 0, SpotsRemaining(tour, bookings, 0))
}

func TestSpotsRemaining_NoBookings(t *testing.T) {
	tour := &Tour{MaxParticipants: 12}

	assert.Equal(t, 12, SpotsRemaining(tour, nil, 0))
}

func TestBookedParticipants(t *testing.T) {
	bookings := []*Booking{
		{Status: StatusPending, Participants: 2},
		{Status: StatusConfirmed, Participants: 3},
		{Status: StatusCompleted, Participants: 4},
		{Status: StatusRefunded, Participants: 1},
	}

	assert.Equal(t, 5, BookedParticipants(bookings))
}
