package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TourBookingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	userBookings []*domain.Booking
	tourBookings []*domain.Booking
	participants []*domain.BookingParticipant

	getErr       error
	transitions  []string
	cancelReason string
	cancelledBy  int64
	lastFilter   domain.TourBookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, _ string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.userBookings, nil
}

func (f *fakeBookingRepo) GetByTourWithFilter(_ context.Context, filter domain.TourBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.tourBookings, nil
}

func (f *fakeBookingRepo) GetParticipants(_ context.Context, _ int64) ([]*domain.BookingParticipant, error) {
	return f.participants, nil
}

func (f *fakeBookingRepo) Confirm(_ context.Context, _ int64) error {
	f.transitions = append(f.transitions, "confirm")
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason string, cancelledBy int64) error {
	f.transitions = append(f.transitions, "cancel")
	f.cancelReason = reason
	f.cancelledBy = cancelledBy
	return nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, _ int64) error {
	f.transitions = append(f.transitions, "complete")
	return nil
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

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, _ int64) ([]*domain.Payment, error) {
	return f.payments, nil
}

type fakeNotifier struct {
	events []domain.Event
}

func (f *fakeNotifier) Send(_ context.Context, event domain.Event) error {
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	ownerID     = int64(42)
	organizerID = int64(100)
	strangerID  = int64(77)
)

func testTour() *domain.Tour {
	return &domain.Tour{
		ID:              7,
		OrganizerID:     organizerID,
		MaxParticipants: 10,
		AvailableFrom:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		AvailableUntil:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PricePerPerson:  decimal.RequireFromString("150.00"),
		Currency:        "EUR",
		IsActive:        true,
	}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            5,
		Reference:     "BK-20250610-A1B2",
		UserID:        ownerID,
		TourID:        7,
		Participants:  2,
		Status:        status,
		PaymentStatus: domain.PaymentStatusUnpaid,
		TotalPrice:    decimal.RequireFromString("300.00"),
		Currency:      "EUR",
	}
}

func newTestService(bookings *fakeBookingRepo, tours *fakeTourRepo, notifier *fakeNotifier) *Service {
	s := NewService(bookings, tours, &fakePaymentRepo{}, notifier, nopLogger{})
	// За десять дней до начала тура: отмена ещё возможна
	s.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	return s
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func TestConfirm_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	notifier := &fakeNotifier{}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, notifier)

	err := s.Confirm(context.Background(), 5, ownerID)

	require.NoError(t, err)
	assert.Equal(t, []string{"confirm"}, repo.transitions)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventBookingConfirmed, notifier.events[0].Type)
}

func TestConfirm_ByOrganizer(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Confirm(context.Background(), 5, organizerID)

	require.NoError(t, err)
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Confirm(context.Background(), 5, ownerID)

	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Empty(t, repo.transitions)
}

func TestConfirm_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Confirm(context.Background(), 5, strangerID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Confirm(context.Background(), 5, ownerID)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	notifier := &fakeNotifier{}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, notifier)

	err := s.Cancel(context.Background(), 5, &models.CancelBookingRequest{
		UserID: ownerID,
		Reason: "изменились планы",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"cancel"}, repo.transitions)
	assert.Equal(t, "изменились планы", repo.cancelReason)
	assert.Equal(t, ownerID, repo.cancelledBy)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventBookingCancelled, notifier.events[0].Type)
}

func TestCancel_ActorDefaultsToOwner(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Cancel(context.Background(), 5, &models.CancelBookingRequest{Reason: "без причины"})

	require.NoError(t, err)
	assert.Equal(t, ownerID, repo.cancelledBy)
}

func TestCancel_TooLate(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})
	// Тур начинается завтра: минимальный срок отмены уже прошёл
	s.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 19, 9, 0, 0, 0, time.UTC)}

	err := s.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: ownerID})

	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Empty(t, repo.transitions)
}

func TestCancel_ExactlyAtNoticeBoundary(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})
	// Ровно за два полных дня до начала: ещё можно
	s.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 18, 23, 0, 0, 0, time.UTC)}

	err := s.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: ownerID})

	require.NoError(t, err)
}

func TestCancel_NotActive(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusCancelled)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: ownerID})

	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Cancel(context.Background(), 5, &models.CancelBookingRequest{
		UserID: ownerID,
		Reason: string(make([]byte, domain.MaxCancellationReasonLength+1)),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Complete(context.Background(), 5, organizerID)

	require.NoError(t, err)
	assert.Equal(t, []string{"complete"}, repo.transitions)
}

func TestComplete_OnlyOrganizer(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Complete(context.Background(), 5, ownerID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestComplete_FromPendingNotEligible(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	err := s.Complete(context.Background(), 5, organizerID)

	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestGetByID_OwnerSeesCancellability(t *testing.T) {
	repo := &fakeBookingRepo{
		booking: testBooking(domain.StatusConfirmed),
		participants: []*domain.BookingParticipant{
			{ID: 1, BookingID: 5, FullName: "Анна Петрова"},
			{ID: 2, BookingID: 5, FullName: "Иван Петров"},
		},
	}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	detail, err := s.GetByID(context.Background(), 5, ownerID)

	require.NoError(t, err)
	assert.True(t, detail.CanBeCancelled)
	assert.Len(t, detail.Participants, 2)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	_, err := s.GetByID(context.Background(), 5, strangerID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetTourBookings_OnlyOrganizer(t *testing.T) {
	repo := &fakeBookingRepo{}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	_, err := s.GetTourBookings(context.Background(), &models.GetTourBookingsRequest{
		UserID: ownerID,
		TourID: 7,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetTourBookings_FilterPassedThrough(t *testing.T) {
	repo := &fakeBookingRepo{}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	status := "confirmed"
	_, err := s.GetTourBookings(context.Background(), &models.GetTourBookingsRequest{
		UserID:          organizerID,
		TourID:          7,
		Status:          &status,
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.lastFilter.TourID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{}
	s := newTestService(repo, &fakeTourRepo{tour: testTour()}, &fakeNotifier{})

	bad := "shipped"
	_, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &bad,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
