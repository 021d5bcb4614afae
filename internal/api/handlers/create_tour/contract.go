package create_tour

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/tours/models"
)

type TourService interface {
	Create(ctx context.Context, req *models.CreateTourRequest) (*models.TourResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
