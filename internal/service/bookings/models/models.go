package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetTourBookingsRequest запрос организатора на бронирования тура
type GetTourBookingsRequest struct {
	UserID          int64   `json:"userId"`
	TourID          int64   `json:"tourId"`
	Status          *string `json:"status,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTourBookingsRequest) ToDomainFilter() (domain.TourBookingsFilter, error) {
	filter := domain.TourBookingsFilter{
		TourID:          r.TourID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = ptr.Ptr(status)
	}

	return filter, nil
}

// Response модели

// BookingSummary краткая проекция бронирования для списков
type BookingSummary struct {
	ID            int64     `json:"id"`
	Token         string    `json:"token"`
	Reference     string    `json:"reference"`
	UserID        int64     `json:"userId"`
	TourID        int64     `json:"tourId"`
	Participants  int       `json:"participants"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalPrice    string    `json:"totalPrice"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookingDetail полная проекция бронирования
type BookingDetail struct {
	BookingSummary

	ContactName     string  `json:"contactName"`
	ContactEmail    string  `json:"contactEmail"`
	ContactPhone    string  `json:"contactPhone"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601

	CanBeCancelled  bool   `json:"canBeCancelled"`
	TotalPaid       string `json:"totalPaid"`
	AmountRemaining string `json:"amountRemaining"`

	Participants []ParticipantDetail `json:"travelers"`
	Payments     []PaymentSummary    `json:"payments"`
}

// ParticipantDetail проекция данных путешественника
type ParticipantDetail struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"fullName"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	PassportNumber *string `json:"passportNumber,omitempty"`
	DietaryNotes   *string `json:"dietaryNotes,omitempty"`
	MedicalNotes   *string `json:"medicalNotes,omitempty"`
}

// PaymentSummary проекция платежа внутри деталей бронирования
type PaymentSummary struct {
	ID            int64   `json:"id"`
	TransactionID string  `json:"transactionId"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	ProcessedAt   *string `json:"processedAt,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingSummary `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в краткую проекцию
func FromDomainBooking(b *domain.Booking) *BookingSummary {
	if b == nil {
		return nil
	}

	return &BookingSummary{
		ID:            b.ID,
		Token:         b.Token.String(),
		Reference:     b.Reference,
		UserID:        b.UserID,
		TourID:        b.TourID,
		Participants:  b.Participants,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalPrice:    b.TotalPrice.StringFixed(2),
		Currency:      b.Currency,
		CreatedAt:     b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingSummary, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if summary := FromDomainBooking(booking); summary != nil {
			resp.Bookings = append(resp.Bookings, *summary)
		}
	}

	return resp
}

// FromDomainBookingDetail собирает полную проекцию бронирования.
// canBeCancelled вычисляется сервисом по доменному предикату; проекция
// бизнес-правил не содержит.
func FromDomainBookingDetail(
	b *domain.Booking,
	participants []*domain.BookingParticipant,
	payments []*domain.Payment,
	canBeCancelled bool,
) *BookingDetail {
	detail := &BookingDetail{
		BookingSummary:     *FromDomainBooking(b),
		ContactName:        b.ContactName,
		ContactEmail:       b.ContactEmail,
		ContactPhone:       b.ContactPhone,
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CanBeCancelled:     canBeCancelled,
		Participants:       make([]ParticipantDetail, 0, len(participants)),
		Payments:           make([]PaymentSummary, 0, len(payments)),
	}

	detail.ConfirmedAt = formatTimePtr(b.ConfirmedAt)
	detail.CancelledAt = formatTimePtr(b.CancelledAt)
	detail.CompletedAt = formatTimePtr(b.CompletedAt)

	totalPaid := domain.SumCompleted(payments)
	detail.TotalPaid = totalPaid.StringFixed(2)

	remaining := b.TotalPrice.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	detail.AmountRemaining = remaining.StringFixed(2)

	for _, p := range participants {
		detail.Participants = append(detail.Participants, ParticipantDetail{
			ID:             p.ID,
			FullName:       p.FullName,
			Email:          p.Email,
			Phone:          p.Phone,
			PassportNumber: p.PassportNumber,
			DietaryNotes:   p.DietaryNotes,
			MedicalNotes:   p.MedicalNotes,
		})
	}

	for _, p := range payments {
		detail.Payments = append(detail.Payments, FromDomainPayment(p))
	}

	return detail
}

// FromDomainPayment конвертирует платёж в проекцию
func FromDomainPayment(p *domain.Payment) PaymentSummary {
	summary := PaymentSummary{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount.StringFixed(2),
		Currency:      p.Currency,
		Method:        string(p.Method),
		Type:          string(p.Type),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	summary.ProcessedAt = formatTimePtr(p.ProcessedAt)
	return summary
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusRefunded,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
