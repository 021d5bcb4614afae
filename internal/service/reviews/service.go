package reviews

import (
	"context"
	"errors"
	"fmt"

	reviewRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/review"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews/models"
)

// Service сервис отзывов: публичная лента по туру и модерация организатором.
// Создание отзывов идёт через usecase с проверкой завершённого бронирования.
type Service struct {
	reviewRepo ReviewRepository
	tourRepo   TourRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, tourRepo TourRepository, logger Logger) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		logger:     logger,
	}
}

// ListTourReviews получает отзывы по туру.
// Публичный запрос отдаёт только опубликованные отзывы;
// организатор тура видит все.
func (s *Service) ListTourReviews(ctx context.Context, req *models.ListTourReviewsRequest) (*models.ReviewListResponse, error) {
	tour, err := s.tourRepo.GetByID(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("ListTourReviews: tour id=%d not found", req.TourID)
			return nil, ErrTourNotFound
		}
		s.logger.Error("ListTourReviews: failed to get tour id=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: ListTourReviews - repository error: %w", ErrInternal, err)
	}

	approvedOnly := tour.OrganizerID != req.UserID

	reviews, err := s.reviewRepo.GetByTourID(ctx, req.TourID, approvedOnly)
	if err != nil {
		s.logger.Error("ListTourReviews: failed to get reviews for tour=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: ListTourReviews - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews), nil
}

// Approve публикует или скрывает отзыв. Доступно только организатору тура.
func (s *Service) Approve(ctx context.Context, req *models.ApproveReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Approve: review=%d approved=%t by user=%d", req.ReviewID, req.Approved, req.UserID)

	review, err := s.reviewRepo.GetByID(ctx, req.ReviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("Approve: review id=%d not found", req.ReviewID)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Approve: failed to get review id=%d: %v", req.ReviewID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %w", ErrInternal, err)
	}

	tour, err := s.tourRepo.GetByID(ctx, review.TourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("Approve: tour id=%d not found for review=%d", review.TourID, review.ID)
			return nil, ErrTourNotFound
		}
		s.logger.Error("Approve: failed to get tour id=%d: %v", review.TourID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %w", ErrInternal, err)
	}

	if tour.OrganizerID != req.UserID {
		s.logger.Warn("Approve: user=%d is not the organizer of tour=%d", req.UserID, tour.ID)
		return nil, ErrAccessDenied
	}

	if err := s.reviewRepo.SetApproved(ctx, review.ID, req.Approved); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Approve: failed to update review id=%d: %v", review.ID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %w", ErrInternal, err)
	}

	review.IsApproved = req.Approved

	s.logger.Info("Approve: review=%d is now approved=%t", review.ID, req.Approved)
	return models.FromDomainReview(review), nil
}
