package fail_payment

import "context"

type PaymentService interface {
	MarkFailed(ctx context.Context, paymentID int64, gatewayResponse []byte) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
