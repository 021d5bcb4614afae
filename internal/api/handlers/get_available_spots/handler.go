package get_available_spots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	getAvailableSpots "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_available_spots"
)

const (
	msgInvalidTourID       = "некорректный ID тура"
	msgInvalidParticipants = "некорректное число участников"
	msgTourNotFound        = "тур не найден"
)

type Handler struct {
	useCase GetAvailableSpotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSpotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/available-spots?participants=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/available-spots - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	participants := 0
	if raw := r.URL.Query().Get("participants"); raw != "" {
		participants, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /tours/{id}/available-spots - Invalid participants %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidParticipants)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSpots.Request{
		TourID:       tourID,
		Participants: participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSpots.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/available-spots - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, getAvailableSpots.ErrInvalidInput):
			h.logger.Warn("GET /tours/{id}/available-spots - Invalid input: tour_id=%d", tourID)
			handlers.RespondBadRequest(w, msgInvalidParticipants)

		default:
			h.logger.Error("GET /tours/{id}/available-spots - Failed to get spots: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
