package submit_review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/review"
)

type fakeReviewRepo struct {
	created *domain.Review
	err     error
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *review
	created.ID = 1
	created.CreatedAt = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

type fakeBookingRepo struct {
	booking *domain.Booking
	err     error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:     5,
		UserID: 42,
		TourID: 7,
		Status: domain.StatusCompleted,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:    42,
		BookingID: 5,
		Rating:    5,
		Title:     "Отличный тур",
		Comment:   "Все прошло замечательно, рекомендую",
	}
}

func TestExecute_Success(t *testing.T) {
	reviews := &fakeReviewRepo{}
	uc := NewUseCase(reviews, &fakeBookingRepo{booking: completedBooking()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.TourID)
	assert.Equal(t, 5, resp.Rating)
	assert.True(t, resp.IsVerified)
	assert.False(t, resp.IsApproved, "новый отзыв не должен быть одобрен автоматически")
}

func TestExecute_TrimsTitleAndComment(t *testing.T) {
	reviews := &fakeReviewRepo{}
	uc := NewUseCase(reviews, &fakeBookingRepo{booking: completedBooking()}, nopLogger{})

	req := validRequest()
	req.Title = "  Отличный тур  "
	req.Comment = "\tВсе прошло замечательно, рекомендую\n"

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Отличный тур", resp.Title)
	assert.Equal(t, "Все прошло замечательно, рекомендую", resp.Comment)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := NewUseCase(&fakeReviewRepo{}, &fakeBookingRepo{err: bookingRepo.ErrBookingNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NotOwner(t *testing.T) {
	booking := completedBooking()
	booking.UserID = 99
	uc := NewUseCase(&fakeReviewRepo{}, &fakeBookingRepo{booking: booking}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BookingNotCompleted(t *testing.T) {
	statuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusRefunded,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			booking := completedBooking()
			booking.Status = status
			uc := NewUseCase(&fakeReviewRepo{}, &fakeBookingRepo{booking: booking}, nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrBookingNotEligible)
		})
	}
}

func TestExecute_AlreadyReviewed(t *testing.T) {
	reviews := &fakeReviewRepo{err: reviewRepo.ErrAlreadyExists}
	uc := NewUseCase(reviews, &fakeBookingRepo{booking: completedBooking()}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"нет пользователя", func(req *Request) { req.UserID = 0 }},
		{"нет бронирования", func(req *Request) { req.BookingID = 0 }},
		{"оценка ниже минимума", func(req *Request) { req.Rating = 0 }},
		{"оценка выше максимума", func(req *Request) { req.Rating = 6 }},
		{"слишком короткий заголовок", func(req *Request) { req.Title = "Тур" }},
		{"заголовок из пробелов", func(req *Request) { req.Title = "        " }},
		{"слишком короткий комментарий", func(req *Request) { req.Comment = "Хорошо" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeReviewRepo{}, &fakeBookingRepo{booking: completedBooking()}, nopLogger{})
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
