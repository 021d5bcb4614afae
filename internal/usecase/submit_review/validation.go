package submit_review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Title)) < domain.MinReviewTitleLen {
		return fmt.Errorf("%w: title must be at least %d characters",
			ErrInvalidInput, domain.MinReviewTitleLen)
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Comment)) < domain.MinReviewCommentLen {
		return fmt.Errorf("%w: comment must be at least %d characters",
			ErrInvalidInput, domain.MinReviewCommentLen)
	}

	return nil
}
