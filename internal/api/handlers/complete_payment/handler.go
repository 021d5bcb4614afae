package complete_payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPaymentNotFound    = "платеж не найден"
	msgNotProcessable     = "платеж уже обработан"
)

// completePaymentPayload тело запроса завершения платежа
type completePaymentPayload struct {
	GatewayResponse json.RawMessage `json:"gatewayResponse,omitempty"`
}

type Handler struct {
	useCase CompletePaymentUseCase
	logger  Logger
}

func NewHandler(useCase CompletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/payments/{paymentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /payments/{id}/complete - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	// Тело опционально: пустое тело означает отсутствие ответа шлюза
	var payload completePaymentPayload
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &payload); err != nil {
			h.logger.Warn("PATCH /payments/{id}/complete - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &completePayment.Request{
		PaymentID:       paymentID,
		GatewayResponse: payload.GatewayResponse,
	})
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id}/complete - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, completePayment.ErrNotProcessable):
			h.logger.Warn("PATCH /payments/{id}/complete - Not processable: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgNotProcessable)

		case errors.Is(err, completePayment.ErrInvalidInput):
			h.logger.Warn("PATCH /payments/{id}/complete - Invalid input: payment_id=%d", paymentID)
			handlers.RespondBadRequest(w, msgInvalidPaymentID)

		default:
			h.logger.Error("PATCH /payments/{id}/complete - Failed to complete payment: payment_id=%d, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/complete - Payment completed: payment_id=%d, booking_payment_status=%s",
		paymentID, result.BookingPaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
