package get_tour_reviews

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews/models"
)

type ReviewService interface {
	ListTourReviews(ctx context.Context, req *models.ListTourReviewsRequest) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
