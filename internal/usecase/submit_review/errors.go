package submit_review

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("submit_review: booking not found")

	// ErrAccessDenied возвращается, когда отзыв оставляет не владелец бронирования
	ErrAccessDenied = errors.New("submit_review: access denied")

	// ErrBookingNotEligible возвращается, когда бронирование не завершено
	ErrBookingNotEligible = errors.New("submit_review: booking is not completed")

	// ErrAlreadyReviewed возвращается при повторном отзыве на то же бронирование
	ErrAlreadyReviewed = errors.New("submit_review: booking already reviewed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_review: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_review: internal error")
)
