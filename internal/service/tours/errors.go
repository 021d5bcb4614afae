package tours

import "errors"

var (
	// ErrTourNotFound возвращается, когда тур не найден
	ErrTourNotFound = errors.New("tour not found")

	// ErrAccessDenied возвращается, когда пользователь не организатор тура
	ErrAccessDenied = errors.New("access denied")

	// ErrCapacityBelowBooked возвращается при попытке уменьшить вместимость
	// ниже числа уже забронированных мест
	ErrCapacityBelowBooked = errors.New("max participants cannot be lower than booked participants")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
