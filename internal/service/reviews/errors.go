package reviews

import "errors"

var (
	// ErrReviewNotFound отзыв не найден
	ErrReviewNotFound = errors.New("reviews: review not found")

	// ErrTourNotFound тур не найден
	ErrTourNotFound = errors.New("reviews: tour not found")

	// ErrAccessDenied доступ запрещен
	ErrAccessDenied = errors.New("reviews: access denied")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reviews: internal error")
)
