package create_tour

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/tours/models"
)

// CreateTourRequest HTTP request model
type CreateTourRequest struct {
	DestinationID   int64  `json:"destinationId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	MaxParticipants int    `json:"maxParticipants"`
	AvailableFrom   string `json:"availableFrom"`  // "2025-10-15"
	AvailableUntil  string `json:"availableUntil"` // "2025-10-25"
	PricePerPerson  string `json:"pricePerPerson"` // "150.00"
	Currency        string `json:"currency"`
	IsActive        bool   `json:"isActive"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// (с парсингом дат и цены)
func (r *CreateTourRequest) ToServiceRequest(organizerID int64) (*models.CreateTourRequest, error) {
	from, err := time.Parse(domain.DateFormat, r.AvailableFrom)
	if err != nil {
		return nil, err
	}

	until, err := time.Parse(domain.DateFormat, r.AvailableUntil)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(r.PricePerPerson)
	if err != nil {
		return nil, err
	}

	return &models.CreateTourRequest{
		OrganizerID:     organizerID,
		DestinationID:   r.DestinationID,
		Title:           r.Title,
		Description:     r.Description,
		MaxParticipants: r.MaxParticipants,
		AvailableFrom:   from,
		AvailableUntil:  until,
		PricePerPerson:  price,
		Currency:        r.Currency,
		IsActive:        r.IsActive,
	}, nil
}
