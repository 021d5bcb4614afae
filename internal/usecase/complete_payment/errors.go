package complete_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("complete_payment: payment not found")

	// ErrNotProcessable возвращается, когда платеж уже обработан
	ErrNotProcessable = errors.New("complete_payment: payment is not processable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_payment: internal error")
)
