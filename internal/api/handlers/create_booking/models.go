package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	createBooking "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
)

// ParticipantPayload данные участника в HTTP запросе
type ParticipantPayload struct {
	FullName       string  `json:"fullName"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	PassportNumber *string `json:"passportNumber,omitempty"`
	DietaryNotes   *string `json:"dietaryNotes,omitempty"`
	MedicalNotes   *string `json:"medicalNotes,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TourID          int64                `json:"tourId"`
	ContactName     string               `json:"contactName,omitempty"`
	ContactEmail    string               `json:"contactEmail"`
	ContactPhone    string               `json:"contactPhone,omitempty"`
	Participants    []ParticipantPayload `json:"participants"`
	SpecialRequests *string              `json:"specialRequests,omitempty"`

	// TotalPriceOverride стафф-переопределение итоговой стоимости
	TotalPriceOverride *string `json:"totalPriceOverride,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Token           string  `json:"token"`
	Reference       string  `json:"reference"`
	UserID          int64   `json:"userId"`
	TourID          int64   `json:"tourId"`
	Participants    int     `json:"participants"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalPrice      string  `json:"totalPrice"`
	Currency        string  `json:"currency"`
	ContactName     string  `json:"contactName"`
	ContactEmail    string  `json:"contactEmail"`
	ContactPhone    string  `json:"contactPhone,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	SpotsRemaining  int     `json:"spotsRemaining"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом переопределения стоимости)
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	participants := make([]createBooking.ParticipantInput, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, createBooking.ParticipantInput{
			FullName:       p.FullName,
			Email:          p.Email,
			Phone:          p.Phone,
			PassportNumber: p.PassportNumber,
			DietaryNotes:   p.DietaryNotes,
			MedicalNotes:   p.MedicalNotes,
		})
	}

	req := &createBooking.Request{
		UserID:          userID,
		TourID:          r.TourID,
		ContactName:     r.ContactName,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		Participants:    participants,
		SpecialRequests: r.SpecialRequests,
	}

	if r.TotalPriceOverride != nil {
		override, err := decimal.NewFromString(*r.TotalPriceOverride)
		if err != nil {
			return nil, err
		}
		req.TotalPriceOverride = &override
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Token:           resp.Token.String(),
		Reference:       resp.Reference,
		UserID:          resp.UserID,
		TourID:          resp.TourID,
		Participants:    resp.Participants,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		TotalPrice:      resp.TotalPrice,
		Currency:        resp.Currency,
		ContactName:     resp.ContactName,
		ContactEmail:    resp.ContactEmail,
		ContactPhone:    resp.ContactPhone,
		SpecialRequests: resp.SpecialRequests,
		SpotsRemaining:  resp.SpotsRemaining,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
