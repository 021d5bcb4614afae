package tours

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/internal/service/tours/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

type fakeTourRepo struct {
	tour    *domain.Tour
	tours   []*domain.Tour
	getErr  error
	updated *domain.Tour
}

func (f *fakeTourRepo) Create(_ context.Context, tour *domain.Tour) (*domain.Tour, error) {
	created := *tour
	created.ID = 1
	created.CreatedAt = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

func (f *fakeTourRepo) GetByID(_ context.Context, _ int64) (*domain.Tour, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.tour, nil
}

func (f *fakeTourRepo) ListActive(_ context.Context) ([]*domain.Tour, error) {
	return f.tours, nil
}

func (f *fakeTourRepo) Update(_ context.Context, tour *domain.Tour) error {
	f.updated = tour
	return nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByTour(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.bookings, nil
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

const organizerID = int64(100)

func testTour() *domain.Tour {
	return &domain.Tour{
		ID:              7,
		DestinationID:   3,
		OrganizerID:     organizerID,
		Title:           "Винный тур по Тоскане",
		MaxParticipants: 10,
		AvailableFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AvailableUntil:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PricePerPerson:  decimal.RequireFromString("150.00"),
		Currency:        "EUR",
		IsActive:        true,
	}
}

func newTestService(tours *fakeTourRepo, bookings *fakeBookingRepo) *Service {
	s := NewService(tours, bookings, nopLogger{})
	s.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	return s
}

func createRequest() *models.CreateTourRequest {
	return &models.CreateTourRequest{
		OrganizerID:     organizerID,
		DestinationID:   3,
		Title:           "Винный тур по Тоскане",
		MaxParticipants: 10,
		AvailableFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AvailableUntil:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PricePerPerson:  decimal.RequireFromString("150.00"),
		Currency:        "EUR",
		IsActive:        true,
	}
}

func TestCreate_Success(t *testing.T) {
	s := newTestService(&fakeTourRepo{}, &fakeBookingRepo{})

	resp, err := s.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "150.00", resp.PricePerPerson)
	assert.Equal(t, "2025-06-01", resp.AvailableFrom)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.CreateTourRequest)
	}{
		{"нет организатора", func(req *models.CreateTourRequest) { req.OrganizerID = 0 }},
		{"нет направления", func(req *models.CreateTourRequest) { req.DestinationID = 0 }},
		{"пустой заголовок", func(req *models.CreateTourRequest) { req.Title = "   " }},
		{"нулевая вместимость", func(req *models.CreateTourRequest) { req.MaxParticipants = 0 }},
		{"нет окна доступности", func(req *models.CreateTourRequest) { req.AvailableFrom = time.Time{} }},
		{"окно задом наперёд", func(req *models.CreateTourRequest) {
			req.AvailableFrom, req.AvailableUntil = req.AvailableUntil, req.AvailableFrom
		}},
		{"отрицательная цена", func(req *models.CreateTourRequest) {
			req.PricePerPerson = decimal.RequireFromString("-1")
		}},
		{"нет валюты", func(req *models.CreateTourRequest) { req.Currency = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(&fakeTourRepo{}, &fakeBookingRepo{})
			req := createRequest()
			tt.mutate(req)

			_, err := s.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_Availability(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, Participants: 4},
	}}
	s := newTestService(&fakeTourRepo{tour: testTour()}, bookings)

	resp, err := s.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 4, resp.BookedParticipants)
	assert.Equal(t, 6, resp.SpotsRemaining)
	assert.True(t, resp.IsBookable)
}

func TestGetByID_NotFound(t *testing.T) {
	s := newTestService(&fakeTourRepo{getErr: tourRepo.ErrTourNotFound}, &fakeBookingRepo{})

	_, err := s.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestUpdate_Success(t *testing.T) {
	repo := &fakeTourRepo{tour: testTour()}
	s := newTestService(repo, &fakeBookingRepo{})

	resp, err := s.Update(context.Background(), &models.UpdateTourRequest{
		UserID: organizerID,
		TourID: 7,
		Title:  ptr.Ptr("Гастрономический тур по Тоскане"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Гастрономический тур по Тоскане", resp.Title)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "Гастрономический тур по Тоскане", repo.updated.Title)
}

func TestUpdate_OnlyOrganizer(t *testing.T) {
	s := newTestService(&fakeTourRepo{tour: testTour()}, &fakeBookingRepo{})

	_, err := s.Update(context.Background(), &models.UpdateTourRequest{
		UserID: 42,
		TourID: 7,
		Title:  ptr.Ptr("Чужой тур"),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_CapacityBelowBooked(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, Participants: 6},
	}}
	s := newTestService(&fakeTourRepo{tour: testTour()}, bookings)

	five := 5
	_, err := s.Update(context.Background(), &models.UpdateTourRequest{
		UserID:          organizerID,
		TourID:          7,
		MaxParticipants: &five,
	})

	assert.ErrorIs(t, err, ErrCapacityBelowBooked)
}

func TestUpdate_CapacityDownToExactlyBooked(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, Participants: 6},
	}}
	repo := &fakeTourRepo{tour: testTour()}
	s := newTestService(repo, bookings)

	six := 6
	resp, err := s.Update(context.Background(), &models.UpdateTourRequest{
		UserID:          organizerID,
		TourID:          7,
		MaxParticipants: &six,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, resp.MaxParticipants)
}

func TestUpdate_DeactivateTour(t *testing.T) {
	repo := &fakeTourRepo{tour: testTour()}
	s := newTestService(repo, &fakeBookingRepo{})

	inactive := false
	resp, err := s.Update(context.Background(), &models.UpdateTourRequest{
		UserID:   organizerID,
		TourID:   7,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestListActive(t *testing.T) {
	repo := &fakeTourRepo{tours: []*domain.Tour{testTour(), testTour()}}
	s := newTestService(repo, &fakeBookingRepo{})

	resp, err := s.ListActive(context.Background())

	require.NoError(t, err)
	assert.Len(t, resp.Tours, 2)
}
