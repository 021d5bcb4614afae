package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

// Service сервис для работы с бронированиями: чтение проекций и переходы
// статусов (confirm/cancel/complete). Создание бронирования живёт в отдельном
// usecase — ему нужна сериализуемая транзакция с проверкой вместимости.
type Service struct {
	bookingRepo  BookingRepository
	tourRepo     TourRepository
	paymentRepo  PaymentRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	tourRepo TourRepository,
	paymentRepo PaymentRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		tourRepo:     tourRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает полную проекцию бронирования.
// Доступно владельцу бронирования и организатору тура.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingDetail, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, tour, err := s.getBookingWithTour(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(booking, tour, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking %s", userID, booking.Reference)
		return nil, err
	}

	participants, err := s.bookingRepo.GetParticipants(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get participants for booking %s: %v", booking.Reference, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	payments, err := s.paymentRepo.GetByBookingID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get payments for booking %s: %v", booking.Reference, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	canBeCancelled := booking.CanBeCancelled(tour.AvailableFrom, s.timeProvider.Now())

	s.logger.Info("GetByID: successfully fetched booking %s", booking.Reference)
	return models.FromDomainBookingDetail(booking, participants, payments, canBeCancelled), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = ptr.Ptr(status)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTourBookings получает бронирования тура
// Доступно только организатору тура
func (s *Service) GetTourBookings(ctx context.Context, req *models.GetTourBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTourBookings: fetching bookings for tour=%d, user=%d", req.TourID, req.UserID)

	tour, err := s.getTour(ctx, "GetTourBookings", req.TourID)
	if err != nil {
		return nil, err
	}

	if tour.OrganizerID != req.UserID {
		s.logger.Warn("GetTourBookings: user=%d is not the organizer of tour=%d", req.UserID, req.TourID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTourBookings: invalid filter for tour=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTourWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTourBookings: repository error for tour=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: GetTourBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetTourBookings: successfully fetched %d bookings for tour=%d", len(bookings), req.TourID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm переводит бронирование pending -> confirmed.
// Недопустимый переход возвращает ErrNotEligible: вызывающие пробуют
// переходы и ориентируются на результат, состояние при этом не меняется.
func (s *Service) Confirm(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", id, userID)

	booking, tour, err := s.getBookingWithTour(ctx, "Confirm", id)
	if err != nil {
		return err
	}

	if err := s.checkAccess(booking, tour, userID); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to booking %s", userID, booking.Reference)
		return err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking %s cannot be confirmed, status=%s", booking.Reference, booking.Status)
		return ErrNotEligible
	}

	if err := s.bookingRepo.Confirm(ctx, id); err != nil {
		// Guard в репозитории: статус успел измениться конкурентно
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking %s changed status concurrently", booking.Reference)
			return ErrNotEligible
		}
		s.logger.Error("Confirm: repository error for booking %s: %v", booking.Reference, err)
		return fmt.Errorf("%w: Confirm - repository error: %w", ErrInternal, err)
	}

	s.emit(ctx, domain.Event{
		Type:             domain.EventBookingConfirmed,
		BookingReference: booking.Reference,
		UserID:           booking.UserID,
		TourID:           booking.TourID,
		OccurredAt:       s.timeProvider.Now(),
	})

	s.logger.Info("Confirm: successfully confirmed booking %s", booking.Reference)
	return nil
}

// Cancel отменяет бронирование.
// Политика: не позднее чем за CancellationNoticeDays полных дней до начала
// тура. Актор отмены — владелец либо организатор тура; если актор не указан,
// записываем владельца бронирования.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, req.UserID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, tour, err := s.getBookingWithTour(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	actor := req.UserID
	if actor == 0 {
		actor = booking.UserID
	}

	if err := s.checkAccess(booking, tour, actor); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking %s", actor, booking.Reference)
		return err
	}

	if !booking.IsActive() {
		s.logger.Warn("Cancel: booking %s cannot be cancelled, status=%s", booking.Reference, booking.Status)
		return ErrNotEligible
	}

	now := s.timeProvider.Now()
	if !booking.CanBeCancelled(tour.AvailableFrom, now) {
		s.logger.Warn("Cancel: too late to cancel booking %s, tour starts %s",
			booking.Reference, tour.AvailableFrom.Format(domain.DateFormat))
		return ErrTooLateToCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.Reason, actor); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking %s changed status concurrently", booking.Reference)
			return ErrNotEligible
		}
		s.logger.Error("Cancel: repository error for booking %s: %v", booking.Reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.emit(ctx, domain.Event{
		Type:             domain.EventBookingCancelled,
		BookingReference: booking.Reference,
		UserID:           booking.UserID,
		TourID:           booking.TourID,
		OccurredAt:       now,
	})

	s.logger.Info("Cancel: successfully cancelled booking %s by user=%d", booking.Reference, actor)
	return nil
}

// Complete переводит бронирование confirmed -> completed.
// Вызывается организатором либо внешним sweep-ом по завершённым турам.
func (s *Service) Complete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Complete: completing booking id=%d by user=%d", id, userID)

	booking, tour, err := s.getBookingWithTour(ctx, "Complete", id)
	if err != nil {
		return err
	}

	if tour.OrganizerID != userID {
		s.logger.Warn("Complete: user=%d is not the organizer of tour=%d", userID, tour.ID)
		return ErrAccessDenied
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking %s cannot be completed, status=%s", booking.Reference, booking.Status)
		return ErrNotEligible
	}

	if err := s.bookingRepo.Complete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Complete: booking %s changed status concurrently", booking.Reference)
			return ErrNotEligible
		}
		s.logger.Error("Complete: repository error for booking %s: %v", booking.Reference, err)
		return fmt.Errorf("%w: Complete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed booking %s", booking.Reference)
	return nil
}

// Вспомогательные методы

func (s *Service) getBookingWithTour(ctx context.Context, op string, id int64) (*domain.Booking, *domain.Tour, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	tour, err := s.getTour(ctx, op, booking.TourID)
	if err != nil {
		return nil, nil, err
	}

	return booking, tour, nil
}

func (s *Service) getTour(ctx context.Context, op string, tourID int64) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("%s: tour id=%d not found", op, tourID)
			return nil, ErrTourNotFound
		}
		s.logger.Error("%s: repository error for tour id=%d: %v", op, tourID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return tour, nil
}

// checkAccess проверяет, что пользователь — владелец бронирования
// или организатор тура
func (s *Service) checkAccess(booking *domain.Booking, tour *domain.Tour, userID int64) error {
	if booking.UserID == userID || tour.OrganizerID == userID {
		return nil
	}
	return ErrAccessDenied
}

// emit отправляет событие уведомителю. Отказ доставки не откатывает
// уже выполненный переход — только логируется.
func (s *Service) emit(ctx context.Context, event domain.Event) {
	if err := s.notifier.Send(ctx, event); err != nil {
		s.logger.Warn("emit: failed to send %s event for booking %s: %v", event.Type, event.BookingReference, err)
	}
}
