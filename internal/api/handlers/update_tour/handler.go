package update_tour

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/tours"
)

const (
	msgInvalidTourID       = "некорректный ID тура"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidFields       = "некорректные даты или цена тура"
	msgTourNotFound        = "тур не найден"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
	msgCapacityBelowBooked = "вместимость нельзя уменьшить ниже числа забронированных мест"
	msgInvalidInput        = "некорректные данные тура"
)

type Handler struct {
	service TourService
	logger  Logger
}

func NewHandler(service TourService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tours/{tourId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tours/{id} - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /tours/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateTourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tours/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, tourID)
	if err != nil {
		h.logger.Warn("PUT /tours/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, tours.ErrTourNotFound):
			h.logger.Warn("PUT /tours/{id} - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, tours.ErrAccessDenied):
			h.logger.Warn("PUT /tours/{id} - Access denied: tour_id=%d, user_id=%d", tourID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, tours.ErrCapacityBelowBooked):
			h.logger.Warn("PUT /tours/{id} - Capacity below booked: tour_id=%d", tourID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityBelowBooked)

		case errors.Is(err, tours.ErrInvalidInput):
			h.logger.Warn("PUT /tours/{id} - Invalid input: tour_id=%d, error=%v", tourID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /tours/{id} - Failed to update tour: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tours/{id} - Tour updated: tour_id=%d, user_id=%d", tourID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
