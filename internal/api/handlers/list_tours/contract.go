package list_tours

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/tours/models"
)

type TourService interface {
	ListActive(ctx context.Context) (*models.TourListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
