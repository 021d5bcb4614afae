package submit_review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/review"
)

// UseCase use case для создания отзыва по завершенному бронированию
type UseCase struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reviewRepo ReviewRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case создания отзыва.
// Отзыв принимается только от владельца завершенного бронирования;
// повторный отзыв отсекается уникальным индексом (booking_id, tour_id).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReview: user=%d, booking=%d, rating=%d", req.UserID, req.BookingID, req.Rating)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitReview: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("SubmitReview: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("SubmitReview: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	// 3. Отзыв может оставить только владелец бронирования
	if booking.UserID != req.UserID {
		uc.logger.Warn("SubmitReview: user=%d is not the owner of booking=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Бронирование должно быть завершено
	if booking.Status != domain.StatusCompleted {
		uc.logger.Warn("SubmitReview: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, ErrBookingNotEligible
	}

	// 5. Создаем отзыв. Флаг верификации пересчитывается здесь,
	// а не доверяется клиенту.
	review := &domain.Review{
		BookingID:  booking.ID,
		TourID:     booking.TourID,
		UserID:     req.UserID,
		Rating:     req.Rating,
		Title:      strings.TrimSpace(req.Title),
		Comment:    strings.TrimSpace(req.Comment),
		IsVerified: booking.Status == domain.StatusConfirmed || booking.Status == domain.StatusCompleted,
		IsApproved: false,
	}

	created, err := uc.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrAlreadyExists) {
			uc.logger.Warn("SubmitReview: booking id=%d already reviewed", booking.ID)
			return nil, ErrAlreadyReviewed
		}
		uc.logger.Error("SubmitReview: failed to create review for booking=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to create review: %w", ErrInternal, err)
	}

	uc.logger.Info("SubmitReview: successfully created review id=%d for booking=%d", created.ID, booking.ID)

	// Конвертируем в response
	return &Response{
		ID:         created.ID,
		BookingID:  created.BookingID,
		TourID:     created.TourID,
		UserID:     created.UserID,
		Rating:     created.Rating,
		Title:      created.Title,
		Comment:    created.Comment,
		IsVerified: created.IsVerified,
		IsApproved: created.IsApproved,
		CreatedAt:  created.CreatedAt,
	}, nil
}
