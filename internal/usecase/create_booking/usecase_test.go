package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

type fakeBookingRepo struct {
	bookings     []*domain.Booking
	participants []*domain.BookingParticipant

	createCalls   int
	failWith      error
	failOnAttempt int // Create возвращает failWith на попытках <= failOnAttempt
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	if f.failWith != nil && (f.failOnAttempt == 0 || f.createCalls <= f.failOnAttempt) {
		return nil, f.failWith
	}
	created := *booking
	created.ID = int64(len(f.bookings) + 1)
	created.CreatedAt = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) AddParticipants(_ context.Context, bookingID int64, participants []*domain.BookingParticipant) error {
	for _, p := range participants {
		p.BookingID = bookingID
		f.participants = append(f.participants, p)
	}
	return nil
}

func (f *fakeBookingRepo) GetActiveByTour(_ context.Context, _ int64) ([]*domain.Booking, error) {
	active := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active, nil
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

type fakeNotifier struct {
	events []domain.Event
	err    error
}

func (f *fakeNotifier) Send(_ context.Context, event domain.Event) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestUseCase(bookings *fakeBookingRepo, tours *fakeTourRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(bookings, tours, notifier, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func activeTour() *domain.Tour {
	return &domain.Tour{
		ID:              7,
		OrganizerID:     100,
		MaxParticipants: 10,
		AvailableFrom:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AvailableUntil:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PricePerPerson:  decimal.RequireFromString("150.00"),
		Currency:        "EUR",
		IsActive:        true,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:       42,
		TourID:       7,
		ContactEmail: "traveler@example.com",
		ContactPhone: "+3725551234",
		Participants: []ParticipantInput{
			{FullName: "Анна Петрова"},
			{FullName: "Иван Петров"},
		},
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, 2, resp.Participants)
	assert.Equal(t, "300.00", resp.TotalPrice)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, 8, resp.SpotsRemaining)
	assert.Regexp(t, `^BK-20250610-[0-9A-Z]{4}$`, resp.Reference)
	assert.NotEqual(t, resp.Token.String(), "00000000-0000-0000-0000-000000000000")

	require.Len(t, bookings.participants, 2)
	assert.Equal(t, "Анна Петрова", bookings.participants[0].FullName)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventBookingCreated, notifier.events[0].Type)
	assert.Equal(t, resp.Reference, notifier.events[0].BookingReference)
}

func TestExecute_ContactNameDefaultsToFirstParticipant(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Анна Петрова", resp.ContactName)
}

func TestExecute_TotalPriceOverride(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	req := validRequest()
	override := decimal.RequireFromString("250.00")
	req.TotalPriceOverride = &override

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "250.00", resp.TotalPrice)
}

func TestExecute_NoSpotsAvailable(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusConfirmed, Participants: 8},
		},
	}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	req := validRequest()
	req.Participants = []ParticipantInput{
		{FullName: "Первый"},
		{FullName: "Второй"},
		{FullName: "Третий"},
	}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrNoSpotsAvailable)

	var spotsErr *NoSpotsError
	require.True(t, errors.As(err, &spotsErr))
	assert.Equal(t, 2, spotsErr.Remaining)
	assert.Equal(t, 3, spotsErr.Requested)
}

func TestExecute_ExactlyFillsRemainingSpots(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusConfirmed, Participants: 8},
		},
	}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.SpotsRemaining)
}

func TestExecute_CancelledBookingsFreeUpSpots(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusCancelled, Participants: 9},
		},
	}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 8, resp.SpotsRemaining)
}

func TestExecute_TourNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{err: tourRepo.ErrTourNotFound}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestExecute_InactiveTourNotBookable(t *testing.T) {
	tour := activeTour()
	tour.IsActive = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{tour: tour}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTourNotBookable)
}

func TestExecute_TourWindowClosed(t *testing.T) {
	tour := activeTour()
	tour.AvailableUntil = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{tour: tour}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTourNotBookable)
}

func TestExecute_ReferenceCollisionRetried(t *testing.T) {
	bookings := &fakeBookingRepo{
		failWith:      bookingRepo.ErrDuplicateReference,
		failOnAttempt: 2,
	}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 3, bookings.createCalls)
	assert.NotEmpty(t, resp.Reference)
}

func TestExecute_ReferenceCollisionExhausted(t *testing.T) {
	bookings := &fakeBookingRepo{failWith: bookingRepo.ErrDuplicateReference}
	uc := newTestUseCase(bookings, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxReferenceAttempts, bookings.createCalls)
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("connection refused")}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{tour: activeTour()}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"нет пользователя", func(req *Request) { req.UserID = 0 }},
		{"нет тура", func(req *Request) { req.TourID = -1 }},
		{"нет участников", func(req *Request) { req.Participants = nil }},
		{"участник без имени", func(req *Request) { req.Participants[0].FullName = "   " }},
		{"нет контактного email", func(req *Request) { req.ContactEmail = "" }},
		{"слишком длинные пожелания", func(req *Request) {
			long := string(make([]byte, domain.MaxSpecialRequestsLength+1))
			req.SpecialRequests = &long
		}},
		{"отрицательное переопределение стоимости", func(req *Request) {
			negative := decimal.RequireFromString("-1")
			req.TotalPriceOverride = &negative
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookingRepo{}, &fakeTourRepo{tour: activeTour()}, &fakeNotifier{})
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
