package get_tour

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/tours"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgTourNotFound  = "тур не найден"
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

// Handle GET /api/v1/tours/{tourId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id} - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	result, err := h.service.GetByID(r.Context(), tourID)
	if err != nil {
		switch {
		case errors.Is(err, tours.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id} - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		default:
			h.logger.Error("GET /tours/{id} - Failed to get tour: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
