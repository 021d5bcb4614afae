package get_available_spots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

// UseCase use case для получения остатка мест в туре
type UseCase struct {
	bookingRepo  BookingRepository
	tourRepo     TourRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tourRepo TourRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tourRepo:     tourRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения остатка мест.
// Чтения выполняются в read-only транзакции для согласованного снимка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.TourID <= 0 {
		return nil, fmt.Errorf("%w: tourID must be positive", ErrInvalidInput)
	}
	if req.Participants < 0 {
		return nil, fmt.Errorf("%w: participants cannot be negative", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		tour     *domain.Tour
		bookings []*domain.Booking
	)

	// 2. Читаем тур и его активные бронирования одним снимком
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		tour, err = uc.tourRepo.GetByID(txCtx, req.TourID)
		if err != nil {
			if errors.Is(err, tourRepo.ErrTourNotFound) {
				uc.logger.Warn("GetAvailableSpots: tour id=%d not found", req.TourID)
				return ErrTourNotFound
			}
			uc.logger.Error("GetAvailableSpots: failed to get tour id=%d: %v", req.TourID, err)
			return fmt.Errorf("%w: failed to get tour: %w", ErrInternal, err)
		}

		bookings, err = uc.bookingRepo.GetActiveByTour(txCtx, req.TourID)
		if err != nil {
			uc.logger.Error("GetAvailableSpots: failed to get bookings for tour=%d: %v", req.TourID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Считаем остаток
	spots := domain.SpotsRemaining(tour, bookings, 0)
	bookable := tour.IsBookable(now)

	return &Response{
		TourID:             tour.ID,
		MaxParticipants:    tour.MaxParticipants,
		BookedParticipants: domain.BookedParticipants(bookings),
		SpotsRemaining:     spots,
		IsBookable:         bookable,
		CanAccommodate:     bookable && req.Participants > 0 && req.Participants <= spots,
		PricePerPerson:     tour.PricePerPerson.StringFixed(2),
		Currency:           tour.Currency,
	}, nil
}
