package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

// RecordPaymentRequest запрос на запись платежа
type RecordPaymentRequest struct {
	UserID    int64
	BookingID int64
	Amount    decimal.Decimal
	Currency  string // пустое значение — валюта бронирования
	Method    string
	Type      string
}

// PaymentResponse проекция платежа
type PaymentResponse struct {
	ID            int64   `json:"id"`
	TransactionID string  `json:"transactionId"`
	BookingID     int64   `json:"bookingId"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	ProcessedAt   *string `json:"processedAt,omitempty"`
}

// PaymentListResponse ответ со списком платежей бронирования
type PaymentListResponse struct {
	BookingID int64             `json:"bookingId"`
	Payments  []PaymentResponse `json:"payments"`
	TotalPaid string            `json:"totalPaid"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		BookingID:     p.BookingID,
		Amount:        p.Amount.StringFixed(2),
		Currency:      p.Currency,
		Method:        string(p.Method),
		Type:          string(p.Type),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}

	if p.ProcessedAt != nil {
		resp.ProcessedAt = ptr.Ptr(p.ProcessedAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainPaymentList конвертирует список платежей в DTO
func FromDomainPaymentList(bookingID int64, payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		BookingID: bookingID,
		Payments:  make([]PaymentResponse, 0, len(payments)),
		TotalPaid: domain.SumCompleted(payments).StringFixed(2),
	}

	for _, p := range payments {
		if dto := FromDomainPayment(p); dto != nil {
			resp.Payments = append(resp.Payments, *dto)
		}
	}

	return resp
}

// ToDomainMethod конвертирует строку в domain.PaymentMethod с валидацией
func ToDomainMethod(method string) (domain.PaymentMethod, bool) {
	m := domain.PaymentMethod(method)
	switch m {
	case domain.MethodCard, domain.MethodCash, domain.MethodBankTransfer:
		return m, true
	}
	return "", false
}

// ToDomainType конвертирует строку в domain.PaymentType с валидацией
func ToDomainType(paymentType string) (domain.PaymentType, bool) {
	t := domain.PaymentType(paymentType)
	switch t {
	case domain.TypeFull, domain.TypeDeposit, domain.TypeBalance, domain.TypeRefund:
		return t, true
	}
	return "", false
}
