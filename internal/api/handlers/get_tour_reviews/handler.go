package get_tour_reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reviews/models"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgTourNotFound  = "тур не найден"
)

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

// Handle GET /api/v1/tours/{tourId}/reviews
// Маршрут публичный: заголовок X-User-ID опционален и нужен только
// организатору, чтобы видеть неопубликованные отзывы.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/reviews - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	var userID int64
	if raw := r.Header.Get("X-User-ID"); raw != "" {
		userID, _ = strconv.ParseInt(raw, 10, 64)
	}

	result, err := h.service.ListTourReviews(r.Context(), &models.ListTourReviewsRequest{
		TourID: tourID,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/reviews - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		default:
			h.logger.Error("GET /tours/{id}/reviews - Failed to get reviews: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
