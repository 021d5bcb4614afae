package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTourNotFound возвращается, когда тур бронирования не найден
	ErrTourNotFound = errors.New("tour not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotEligible возвращается при недопустимом переходе статуса
	// (например, повторный confirm). Вызывающие рутинно пробуют переходы,
	// поэтому это сигнал, а не системный сбой.
	ErrNotEligible = errors.New("booking is not eligible for this transition")

	// ErrTooLateToCancel возвращается, когда до начала тура осталось
	// меньше минимального срока отмены
	ErrTooLateToCancel = errors.New("too late to cancel this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
