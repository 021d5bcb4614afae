package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrBookingNotFound возвращается, когда бронирование платежа не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidAmount возвращается при неположительной сумме платежа
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrNotProcessable возвращается, когда платёж уже в финальном статусе
	ErrNotProcessable = errors.New("payment is not processable")

	// ErrNotEligible возвращается при попытке записать платёж
	// по отменённому бронированию
	ErrNotEligible = errors.New("booking is not eligible for payments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
