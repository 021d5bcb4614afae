package get_booking_payments

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/payments/models"
)

type PaymentService interface {
	GetBookingPayments(ctx context.Context, bookingID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
