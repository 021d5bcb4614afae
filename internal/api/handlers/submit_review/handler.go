package submit_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	submitReview "github.com/m04kA/SMC-TourBookingService/internal/usecase/submit_review"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotEligible        = "отзыв можно оставить только по завершенному бронированию"
	msgAlreadyReviewed    = "отзыв по этому бронированию уже существует"
	msgInvalidInput       = "некорректные данные отзыва"
)

// submitReviewPayload тело запроса создания отзыва
type submitReviewPayload struct {
	BookingID int64  `json:"bookingId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

type Handler struct {
	useCase SubmitReviewUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var payload submitReviewPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitReview.Request{
		UserID:    userID,
		BookingID: payload.BookingID,
		Rating:    payload.Rating,
		Title:     payload.Title,
		Comment:   payload.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, submitReview.ErrBookingNotFound):
			h.logger.Warn("POST /reviews - Booking not found: booking_id=%d", payload.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, submitReview.ErrAccessDenied):
			h.logger.Warn("POST /reviews - Access denied: booking_id=%d, user_id=%d", payload.BookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitReview.ErrBookingNotEligible):
			h.logger.Warn("POST /reviews - Booking not eligible: booking_id=%d", payload.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotEligible)

		case errors.Is(err, submitReview.ErrAlreadyReviewed):
			h.logger.Warn("POST /reviews - Already reviewed: booking_id=%d", payload.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyReviewed)

		case errors.Is(err, submitReview.ErrInvalidInput):
			h.logger.Warn("POST /reviews - Invalid input: booking_id=%d, error=%v", payload.BookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reviews - Failed to submit review: booking_id=%d, error=%v", payload.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review created: review_id=%d, booking_id=%d, user_id=%d",
		result.ID, payload.BookingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
