package get_available_spots

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByTour(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeTourRepo struct {
	tour *domain.Tour
	err  error
}

func (f *fakeTourRepo) GetByID(_ context.Context, _ int64) (*domain.Tour, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tour, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeTour() *domain.Tour {
	return &domain.Tour{
		ID:              7,
		MaxParticipants: 10,
		AvailableFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AvailableUntil:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PricePerPerson:  decimal.RequireFromString("150.00"),
		Currency:        "EUR",
		IsActive:        true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, tours *fakeTourRepo) *UseCase {
	uc := NewUseCase(bookings, tours, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_SpotsSummary(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, Participants: 4},
		{ID: 2, Status: domain.StatusPending, Participants: 2},
	}}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()})

	resp, err := uc.Execute(context.Background(), &Request{TourID: 7})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.MaxParticipants)
	assert.Equal(t, 6, resp.BookedParticipants)
	assert.Equal(t, 4, resp.SpotsRemaining)
	assert.True(t, resp.IsBookable)
	assert.False(t, resp.CanAccommodate, "без запрошенных участников заселение не оценивается")
	assert.Equal(t, "150.00", resp.PricePerPerson)
	assert.Equal(t, "EUR", resp.Currency)
}

func TestExecute_CanAccommodate(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, Participants: 7},
	}}

	tests := []struct {
		name         string
		participants int
		want         bool
	}{
		{"вмещается", 3, true},
		{"ровно в остаток", 3, true},
		{"не вмещается", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()})

			resp, err := uc.Execute(context.Background(), &Request{TourID: 7, Participants: tt.participants})

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.CanAccommodate)
		})
	}
}

func TestExecute_NotBookableTourCannotAccommodate(t *testing.T) {
	tour := activeTour()
	tour.IsActive = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{tour: tour})

	resp, err := uc.Execute(context.Background(), &Request{TourID: 7, Participants: 2})

	require.NoError(t, err)
	assert.False(t, resp.IsBookable)
	assert.False(t, resp.CanAccommodate)
	assert.Equal(t, 10, resp.SpotsRemaining)
}

func TestExecute_TourNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{err: tourRepo.ErrTourNotFound})

	_, err := uc.Execute(context.Background(), &Request{TourID: 99})

	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{tour: activeTour()})

	_, err := uc.Execute(context.Background(), &Request{TourID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TourID: 7, Participants: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
