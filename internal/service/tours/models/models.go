package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// CreateTourRequest запрос на создание тура
type CreateTourRequest struct {
	OrganizerID     int64
	DestinationID   int64
	Title           string
	Description     string
	MaxParticipants int
	AvailableFrom   time.Time
	AvailableUntil  time.Time
	PricePerPerson  decimal.Decimal
	Currency        string
	IsActive        bool
}

// UpdateTourRequest запрос на обновление тура.
// nil-поля не меняются.
type UpdateTourRequest struct {
	UserID          int64
	TourID          int64
	Title           *string
	Description     *string
	MaxParticipants *int
	AvailableFrom   *time.Time
	AvailableUntil  *time.Time
	PricePerPerson  *decimal.Decimal
	Currency        *string
	IsActive        *bool
}

// TourResponse проекция тура
type TourResponse struct {
	ID              int64  `json:"id"`
	DestinationID   int64  `json:"destinationId"`
	OrganizerID     int64  `json:"organizerId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	MaxParticipants int    `json:"maxParticipants"`
	AvailableFrom   string `json:"availableFrom"`  // "2025-10-15"
	AvailableUntil  string `json:"availableUntil"` // "2025-10-25"
	PricePerPerson  string `json:"pricePerPerson"`
	Currency        string `json:"currency"`
	IsActive        bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TourAvailabilityResponse проекция тура с оставшимися местами
type TourAvailabilityResponse struct {
	TourResponse

	BookedParticipants int  `json:"bookedParticipants"`
	SpotsRemaining     int  `json:"spotsRemaining"`
	IsBookable         bool `json:"isBookable"`
}

// TourListResponse ответ со списком туров
type TourListResponse struct {
	Tours []TourResponse `json:"tours"`
}

// FromDomainTour конвертирует domain модель в DTO
func FromDomainTour(t *domain.Tour) *TourResponse {
	if t == nil {
		return nil
	}

	return &TourResponse{
		ID:              t.ID,
		DestinationID:   t.DestinationID,
		OrganizerID:     t.OrganizerID,
		Title:           t.Title,
		Description:     t.Description,
		MaxParticipants: t.MaxParticipants,
		AvailableFrom:   t.AvailableFrom.Format(domain.DateFormat),
		AvailableUntil:  t.AvailableUntil.Format(domain.DateFormat),
		PricePerPerson:  t.PricePerPerson.StringFixed(2),
		Currency:        t.Currency,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainTourList конвертирует список domain моделей в DTO
func FromDomainTourList(tours []*domain.Tour) *TourListResponse {
	resp := &TourListResponse{
		Tours: make([]TourResponse, 0, len(tours)),
	}

	for _, tour := range tours {
		if dto := FromDomainTour(tour); dto != nil {
			resp.Tours = append(resp.Tours, *dto)
		}
	}

	return resp
}
