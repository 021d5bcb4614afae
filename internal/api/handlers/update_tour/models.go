package update_tour

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/tours/models"
)

// UpdateTourRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateTourRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
	AvailableFrom   *string `json:"availableFrom,omitempty"`
	AvailableUntil  *string `json:"availableUntil,omitempty"`
	PricePerPerson  *string `json:"pricePerPerson,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// (с парсингом дат и цены)
func (r *UpdateTourRequest) ToServiceRequest(userID, tourID int64) (*models.UpdateTourRequest, error) {
	req := &models.UpdateTourRequest{
		UserID:          userID,
		TourID:          tourID,
		Title:           r.Title,
		Description:     r.Description,
		MaxParticipants: r.MaxParticipants,
		Currency:        r.Currency,
		IsActive:        r.IsActive,
	}

	if r.AvailableFrom != nil {
		from, err := time.Parse(domain.DateFormat, *r.AvailableFrom)
		if err != nil {
			return nil, err
		}
		req.AvailableFrom = &from
	}

	if r.AvailableUntil != nil {
		until, err := time.Parse(domain.DateFormat, *r.AvailableUntil)
		if err != nil {
			return nil, err
		}
		req.AvailableUntil = &until
	}

	if r.PricePerPerson != nil {
		price, err := decimal.NewFromString(*r.PricePerPerson)
		if err != nil {
			return nil, err
		}
		req.PricePerPerson = &price
	}

	return req, nil
}
