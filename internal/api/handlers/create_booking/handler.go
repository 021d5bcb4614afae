package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTourNotFound       = "тур не найден"
	msgTourNotBookable    = "тур недоступен для бронирования"
	msgNoSpotsAvailable   = "недостаточно свободных мест"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid total price override: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNoSpotsAvailable):
			h.logger.Warn("POST /bookings - No spots available: user_id=%d, tour_id=%d", userID, req.TourID)
			msg := msgNoSpotsAvailable
			var spotsErr *createBooking.NoSpotsError
			if errors.As(err, &spotsErr) {
				msg = fmt.Sprintf("%s: осталось мест - %d", msgNoSpotsAvailable, spotsErr.Remaining)
			}
			handlers.RespondError(w, http.StatusConflict, msg)

		case errors.Is(err, createBooking.ErrTourNotFound):
			h.logger.Warn("POST /bookings - Tour not found: tour_id=%d", req.TourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, createBooking.ErrTourNotBookable):
			h.logger.Warn("POST /bookings - Tour not bookable: user_id=%d, tour_id=%d", userID, req.TourID)
			handlers.RespondError(w, http.StatusConflict, msgTourNotBookable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, tour_id=%d, error=%v", userID, req.TourID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, tour_id=%d, error=%v",
				userID, req.TourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, user_id=%d",
		result.ID, result.Reference, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
