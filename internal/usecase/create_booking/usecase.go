package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

// maxReferenceAttempts максимум попыток при коллизии человекочитаемого номера
const maxReferenceAttempts = 5

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	tourRepo     TourRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tourRepo TourRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tourRepo:     tourRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и вставка выполняются в сериализуемой транзакции,
// чтобы конкурентные бронирования не превысили вместимость тура.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, tour=%d, participants=%d",
		req.UserID, req.TourID, len(req.Participants))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result    *domain.Booking
		remaining int
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции.
	// Номер брони генерируется заново при коллизии: повторная вставка
	// внутри прерванной транзакции невозможна, поэтому повторяется
	// вся транзакция целиком.
	var err error
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		reference := domain.NewBookingReference(now)

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 3.1. Получаем тур с блокировкой (FOR UPDATE)
			tour, err := uc.tourRepo.GetByID(txCtx, req.TourID)
			if err != nil {
				if errors.Is(err, tourRepo.ErrTourNotFound) {
					uc.logger.Warn("CreateBooking: tour id=%d not found", req.TourID)
					return ErrTourNotFound
				}
				uc.logger.Error("CreateBooking: failed to get tour id=%d: %v", req.TourID, err)
				return fmt.Errorf("%w: failed to get tour: %w", ErrInternal, err)
			}

			// 3.2. Проверяем, что тур доступен для бронирования
			if !tour.IsBookable(now) {
				uc.logger.Warn("CreateBooking: tour id=%d is not bookable", req.TourID)
				return ErrTourNotBookable
			}

			// 3.3. Получаем активные бронирования тура с блокировкой (FOR UPDATE)
			bookings, err := uc.bookingRepo.GetActiveByTour(txCtx, req.TourID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings for tour=%d: %v", req.TourID, err)
				return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
			}

			// 3.4. Проверяем, что мест хватает
			spots := domain.SpotsRemaining(tour, bookings, 0)
			if len(req.Participants) > spots {
				uc.logger.Warn("CreateBooking: tour=%d has %d spots left, requested %d",
					req.TourID, spots, len(req.Participants))
				return &NoSpotsError{Remaining: spots, Requested: len(req.Participants)}
			}

			uc.logger.Info("CreateBooking: tour=%d has %d/%d spots left",
				req.TourID, spots, tour.MaxParticipants)

			// 3.5. Создаем бронирование в статусе pending
			booking := &domain.Booking{
				Token:         uuid.New(),
				Reference:     reference,
				UserID:        req.UserID,
				TourID:        req.TourID,
				Participants:  len(req.Participants),
				Status:        domain.StatusPending,
				PaymentStatus: domain.PaymentStatusUnpaid,
				TotalPrice:    totalPrice(req, tour),
				Currency:      tour.Currency,

				ContactName:     contactName(req),
				ContactEmail:    req.ContactEmail,
				ContactPhone:    req.ContactPhone,
				SpecialRequests: req.SpecialRequests,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				if !errors.Is(err, bookingRepo.ErrDuplicateReference) {
					uc.logger.Error("CreateBooking: failed to create booking: %v", err)
					return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
				}
				return err
			}

			// 3.6. Сохраняем участников
			if err := uc.bookingRepo.AddParticipants(txCtx, created.ID, toDomainParticipants(req.Participants)); err != nil {
				uc.logger.Error("CreateBooking: failed to add participants for booking=%d: %v", created.ID, err)
				return fmt.Errorf("%w: failed to add participants: %w", ErrInternal, err)
			}

			result = created
			remaining = spots - len(req.Participants)
			return nil
		})

		if err == nil {
			break
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateReference) {
			return nil, err
		}
		uc.logger.Warn("CreateBooking: reference %s collided, attempt %d/%d",
			reference, attempt, maxReferenceAttempts)
	}
	if err != nil {
		uc.logger.Error("CreateBooking: exhausted reference attempts: %v", err)
		return nil, fmt.Errorf("%w: failed to generate unique reference: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s",
		result.ID, result.Reference)

	// 4. Отправляем событие после фиксации транзакции.
	// Отказ доставки не откатывает бронирование.
	if err := uc.notifier.Send(ctx, domain.Event{
		Type:             domain.EventBookingCreated,
		BookingReference: result.Reference,
		UserID:           result.UserID,
		TourID:           result.TourID,
		OccurredAt:       now,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to send event for booking=%d: %v", result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		Token:           result.Token,
		Reference:       result.Reference,
		UserID:          result.UserID,
		TourID:          result.TourID,
		Participants:    result.Participants,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		TotalPrice:      result.TotalPrice.StringFixed(2),
		Currency:        result.Currency,
		ContactName:     result.ContactName,
		ContactEmail:    result.ContactEmail,
		ContactPhone:    result.ContactPhone,
		SpecialRequests: result.SpecialRequests,
		SpotsRemaining:  remaining,
		CreatedAt:       result.CreatedAt,
	}, nil
}
