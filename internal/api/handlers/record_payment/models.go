package record_payment

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/service/payments/models"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Amount   string `json:"amount"` // "150.00"
	Currency string `json:"currency,omitempty"`
	Method   string `json:"method"`
	Type     string `json:"type"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordPaymentRequest) ToServiceRequest(userID, bookingID int64) (*models.RecordPaymentRequest, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, err
	}

	return &models.RecordPaymentRequest{
		UserID:    userID,
		BookingID: bookingID,
		Amount:    amount,
		Currency:  r.Currency,
		Method:    r.Method,
		Type:      r.Type,
	}, nil
}
