package get_tour_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-TourBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgInvalidStatus = "некорректный статус бронирования"
	msgTourNotFound  = "тур не найден"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/bookings?status=pending&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/bookings - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tours/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetTourBookingsRequest{
		UserID:          userID,
		TourID:          tourID,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetTourBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/bookings - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /tours/{id}/bookings - Access denied: tour_id=%d, user_id=%d", tourID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /tours/{id}/bookings - Invalid status filter: tour_id=%d", tourID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /tours/{id}/bookings - Failed to get bookings: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
