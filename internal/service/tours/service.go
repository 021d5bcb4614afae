package tours

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/internal/service/tours/models"
)

// Service сервис каталога туров: стафф-операции организатора и публичные
// чтения. Ядро бронирований каталог не мутирует.
type Service struct {
	tourRepo     TourRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	tourRepo TourRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		tourRepo:     tourRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает новый тур
func (s *Service) Create(ctx context.Context, req *models.CreateTourRequest) (*models.TourResponse, error) {
	s.logger.Info("Create: creating tour %q for organizer=%d", req.Title, req.OrganizerID)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	tour := &domain.Tour{
		DestinationID:   req.DestinationID,
		OrganizerID:     req.OrganizerID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		MaxParticipants: req.MaxParticipants,
		AvailableFrom:   req.AvailableFrom,
		AvailableUntil:  req.AvailableUntil,
		PricePerPerson:  req.PricePerPerson,
		Currency:        req.Currency,
		IsActive:        req.IsActive,
	}

	created, err := s.tourRepo.Create(ctx, tour)
	if err != nil {
		s.logger.Error("Create: failed to create tour %q: %v", req.Title, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created tour id=%d", created.ID)
	return models.FromDomainTour(created), nil
}

// GetByID получает тур с числом оставшихся мест
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TourAvailabilityResponse, error) {
	tour, err := s.getTour(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetActiveByTour(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get bookings for tour=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	booked := domain.BookedParticipants(bookings)

	return &models.TourAvailabilityResponse{
		TourResponse:       *models.FromDomainTour(tour),
		BookedParticipants: booked,
		SpotsRemaining:     domain.SpotsRemaining(tour, bookings, 0),
		IsBookable:         tour.IsBookable(s.timeProvider.Now()),
	}, nil
}

// ListActive получает все активные туры
func (s *Service) ListActive(ctx context.Context) (*models.TourListResponse, error) {
	tours, err := s.tourRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainTourList(tours), nil
}

// Update обновляет тур. Доступно только организатору.
// Вместимость нельзя опустить ниже уже забронированных мест.
func (s *Service) Update(ctx context.Context, req *models.UpdateTourRequest) (*models.TourResponse, error) {
	s.logger.Info("Update: updating tour=%d by user=%d", req.TourID, req.UserID)

	tour, err := s.getTour(ctx, "Update", req.TourID)
	if err != nil {
		return nil, err
	}

	if tour.OrganizerID != req.UserID {
		s.logger.Warn("Update: user=%d is not the organizer of tour=%d", req.UserID, req.TourID)
		return nil, ErrAccessDenied
	}

	applyUpdate(tour, req)

	if err := validateTourFields(tour.Title, tour.MaxParticipants, tour.AvailableFrom, tour.AvailableUntil, tour.PricePerPerson, tour.Currency); err != nil {
		s.logger.Warn("Update: validation failed for tour=%d: %v", req.TourID, err)
		return nil, err
	}

	if req.MaxParticipants != nil {
		bookings, err := s.bookingRepo.GetActiveByTour(ctx, tour.ID)
		if err != nil {
			s.logger.Error("Update: failed to get bookings for tour=%d: %v", tour.ID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		if booked := domain.BookedParticipants(bookings); tour.MaxParticipants < booked {
			s.logger.Warn("Update: tour=%d has %d booked participants, cannot set max to %d",
				tour.ID, booked, tour.MaxParticipants)
			return nil, ErrCapacityBelowBooked
		}
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			return nil, ErrTourNotFound
		}
		s.logger.Error("Update: repository error for tour=%d: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated tour=%d", tour.ID)
	return models.FromDomainTour(tour), nil
}

// Вспомогательные функции

func (s *Service) getTour(ctx context.Context, op string, id int64) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("%s: tour id=%d not found", op, id)
			return nil, ErrTourNotFound
		}
		s.logger.Error("%s: repository error for tour id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return tour, nil
}

func applyUpdate(tour *domain.Tour, req *models.UpdateTourRequest) {
	if req.Title != nil {
		tour.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if req.MaxParticipants != nil {
		tour.MaxParticipants = *req.MaxParticipants
	}
	if req.AvailableFrom != nil {
		tour.AvailableFrom = *req.AvailableFrom
	}
	if req.AvailableUntil != nil {
		tour.AvailableUntil = *req.AvailableUntil
	}
	if req.PricePerPerson != nil {
		tour.PricePerPerson = *req.PricePerPerson
	}
	if req.Currency != nil {
		tour.Currency = *req.Currency
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}
}

func validateCreateRequest(req *models.CreateTourRequest) error {
	if req.OrganizerID <= 0 {
		return fmt.Errorf("%w: organizerID must be positive", ErrInvalidInput)
	}
	if req.DestinationID <= 0 {
		return fmt.Errorf("%w: destinationID must be positive", ErrInvalidInput)
	}
	return validateTourFields(req.Title, req.MaxParticipants, req.AvailableFrom, req.AvailableUntil, req.PricePerPerson, req.Currency)
}

func validateTourFields(
	title string,
	maxParticipants int,
	availableFrom, availableUntil time.Time,
	price decimal.Decimal,
	currency string,
) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if maxParticipants <= 0 {
		return fmt.Errorf("%w: maxParticipants must be positive", ErrInvalidInput)
	}
	if availableFrom.IsZero() || availableUntil.IsZero() {
		return fmt.Errorf("%w: availability window is required", ErrInvalidInput)
	}
	if !availableUntil.After(availableFrom) {
		return fmt.Errorf("%w: availableUntil must be after availableFrom", ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: pricePerPerson cannot be negative", ErrInvalidInput)
	}
	if currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}
	return nil
}
