package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/service/payments"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "некорректная сумма платежа"
	msgBookingNotFound    = "бронирование не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotEligible        = "по этому бронированию нельзя записать платеж"
	msgInvalidInput       = "некорректные данные платежа"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid amount %q: %v", req.Amount, err)
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	result, err := h.service.Record(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrInvalidAmount):
			h.logger.Warn("POST /bookings/{id}/payments - Invalid amount: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, payments.ErrNotEligible):
			h.logger.Warn("POST /bookings/{id}/payments - Not eligible: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotEligible)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payments - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed to record payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payments - Payment recorded: payment_id=%d, transaction_id=%s, booking_id=%d",
		result.ID, result.TransactionID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
