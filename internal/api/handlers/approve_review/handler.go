package approve_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "некорректный ID отзыва"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgReviewNotFound     = "отзыв не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

// approveReviewPayload тело запроса модерации отзыва
type approveReviewPayload struct {
	Approved bool `json:"approved"`
}

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reviews/{reviewId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reviewID, err := strconv.ParseInt(vars["reviewId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reviews/{id}/approve - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reviews/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пустое тело равносильно approved=true
	payload := approveReviewPayload{Approved: true}
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &payload); err != nil {
			h.logger.Warn("PATCH /reviews/{id}/approve - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Approve(r.Context(), &models.ApproveReviewRequest{
		ReviewID: reviewID,
		UserID:   userID,
		Approved: payload.Approved,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PATCH /reviews/{id}/approve - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, reviews.ErrTourNotFound):
			h.logger.Warn("PATCH /reviews/{id}/approve - Tour not found for review: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("PATCH /reviews/{id}/approve - Access denied: review_id=%d, user_id=%d", reviewID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /reviews/{id}/approve - Failed to approve review: review_id=%d, error=%v",
				reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reviews/{id}/approve - Review approved=%t: review_id=%d, user_id=%d",
		result.IsApproved, reviewID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
