package complete_payment

import (
	"context"

	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
)

type CompletePaymentUseCase interface {
	Execute(ctx context.Context, req *completePayment.Request) (*completePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
