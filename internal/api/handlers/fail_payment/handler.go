package fail_payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPaymentNotFound    = "платеж не найден"
	msgNotProcessable     = "платеж уже обработан"
)

// failPaymentPayload тело запроса отклонения платежа
type failPaymentPayload struct {
	GatewayResponse json.RawMessage `json:"gatewayResponse,omitempty"`
}

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

// Handle PATCH /api/v1/payments/{paymentId}/fail
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /payments/{id}/fail - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var payload failPaymentPayload
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &payload); err != nil {
			h.logger.Warn("PATCH /payments/{id}/fail - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	if err := h.service.MarkFailed(r.Context(), paymentID, payload.GatewayResponse); err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id}/fail - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrNotProcessable):
			h.logger.Warn("PATCH /payments/{id}/fail - Not processable: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgNotProcessable)

		default:
			h.logger.Error("PATCH /payments/{id}/fail - Failed to fail payment: payment_id=%d, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/fail - Payment marked as failed: payment_id=%d", paymentID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
