package approve_review

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews/models"
)

type ReviewService interface {
	Approve(ctx context.Context, req *models.ApproveReviewRequest) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
