package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrTourNotFound возвращается, когда тур не найден
	ErrTourNotFound = errors.New("create_booking: tour not found")

	// ErrTourNotBookable возвращается, когда тур неактивен или его окно доступности не покрывает текущую дату
	ErrTourNotBookable = errors.New("create_booking: tour is not bookable")

	// ErrNoSpotsAvailable возвращается, когда запрошенное число участников превышает оставшиеся места
	ErrNoSpotsAvailable = errors.New("create_booking: not enough spots available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// NoSpotsError несет число оставшихся мест для ответа клиенту.
// Разворачивается в ErrNoSpotsAvailable, чтобы вызывающие могли
// проверять errors.Is.
type NoSpotsError struct {
	Remaining int
	Requested int
}

func (e *NoSpotsError) Error() string {
	return fmt.Sprintf("%v: %d remaining, %d requested", ErrNoSpotsAvailable, e.Remaining, e.Requested)
}

func (e *NoSpotsError) Unwrap() error { return ErrNoSpotsAvailable }
