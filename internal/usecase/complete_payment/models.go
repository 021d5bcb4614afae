package complete_payment

import "encoding/json"

// Request модель запроса на завершение платежа
type Request struct {
	PaymentID       int64           // ID платежа
	GatewayResponse json.RawMessage // Ответ платежного шлюза (опционально)
}

// Response модель ответа с обработанным платежом
type Response struct {
	PaymentID     int64  `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	BookingID     int64  `json:"bookingId"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`

	// Агрегатное состояние оплаты бронирования после пересчета
	BookingPaymentStatus string `json:"bookingPaymentStatus"`
	TotalPaid            string `json:"totalPaid"`
	AmountRemaining      string `json:"amountRemaining"`
}
