package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-TourBookingService/internal/service/payments/models"
)

// maxTransactionIDAttempts число попыток генерации уникального transaction id
const maxTransactionIDAttempts = 5

// Service платёжный сервис: запись платежей и перевод их в failed.
// Завершение платежа с пересчётом агрегатного статуса бронирования живёт
// в usecase complete_payment — ему нужна сериализуемая транзакция.
type Service struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр платёжного сервиса
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Record записывает новый платёж по бронированию в статусе pending.
// Transaction id генерируется с повтором при коллизии.
func (s *Service) Record(ctx context.Context, req *models.RecordPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Record: recording payment for booking=%d, amount=%s, method=%s, type=%s",
		req.BookingID, req.Amount.StringFixed(2), req.Method, req.Type)

	if !req.Amount.IsPositive() {
		s.logger.Warn("Record: non-positive amount %s for booking=%d", req.Amount, req.BookingID)
		return nil, ErrInvalidAmount
	}

	method, ok := models.ToDomainMethod(req.Method)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}

	paymentType, ok := models.ToDomainType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, req.Type)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Record: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Record: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}

	// Платежи по отменённым бронированиям — только возвраты
	if (booking.Status == domain.StatusCancelled || booking.Status == domain.StatusRefunded) &&
		paymentType != domain.TypeRefund {
		s.logger.Warn("Record: booking %s is %s, only refunds accepted", booking.Reference, booking.Status)
		return nil, ErrNotEligible
	}

	currency := req.Currency
	if currency == "" {
		currency = booking.Currency
	}

	var created *domain.Payment
	for attempt := 0; attempt < maxTransactionIDAttempts; attempt++ {
		payment := &domain.Payment{
			TransactionID: domain.NewTransactionID(s.timeProvider.Now()),
			BookingID:     booking.ID,
			Amount:        req.Amount,
			Currency:      currency,
			Method:        method,
			Type:          paymentType,
			Status:        domain.PaymentPending,
		}

		created, err = s.paymentRepo.Create(ctx, payment)
		if err == nil {
			break
		}
		if errors.Is(err, paymentRepo.ErrDuplicateTransactionID) {
			s.logger.Warn("Record: transaction id collision for booking %s, retrying (%d/%d)",
				booking.Reference, attempt+1, maxTransactionIDAttempts)
			continue
		}
		s.logger.Error("Record: failed to create payment for booking %s: %v", booking.Reference, err)
		return nil, fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}
	if err != nil {
		s.logger.Error("Record: transaction id collisions exhausted for booking %s", booking.Reference)
		return nil, fmt.Errorf("%w: Record - failed to generate unique transaction id: %w", ErrInternal, err)
	}

	s.logger.Info("Record: successfully recorded payment %s for booking %s",
		created.TransactionID, booking.Reference)
	return models.FromDomainPayment(created), nil
}

// MarkFailed переводит платёж в failed.
// Агрегатный статус оплаты бронирования не меняется.
func (s *Service) MarkFailed(ctx context.Context, paymentID int64, gatewayResponse []byte) error {
	s.logger.Info("MarkFailed: failing payment id=%d", paymentID)

	payment, err := s.getPayment(ctx, "MarkFailed", paymentID)
	if err != nil {
		return err
	}

	if !payment.CanBeProcessed() {
		s.logger.Warn("MarkFailed: payment %s is not processable, status=%s", payment.TransactionID, payment.Status)
		return ErrNotProcessable
	}

	if err := s.paymentRepo.MarkFailed(ctx, paymentID, gatewayResponse); err != nil {
		if errors.Is(err, paymentRepo.ErrNotProcessable) {
			s.logger.Warn("MarkFailed: payment %s changed status concurrently", payment.TransactionID)
			return ErrNotProcessable
		}
		s.logger.Error("MarkFailed: repository error for payment %s: %v", payment.TransactionID, err)
		return fmt.Errorf("%w: MarkFailed - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkFailed: payment %s marked as failed", payment.TransactionID)
	return nil
}

// GetByID получает платёж по ID
func (s *Service) GetByID(ctx context.Context, paymentID int64) (*models.PaymentResponse, error) {
	payment, err := s.getPayment(ctx, "GetByID", paymentID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPayment(payment), nil
}

// GetBookingPayments получает все платежи бронирования с суммой оплаченного
func (s *Service) GetBookingPayments(ctx context.Context, bookingID int64) (*models.PaymentListResponse, error) {
	s.logger.Info("GetBookingPayments: fetching payments for booking=%d", bookingID)

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBookingPayments: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetBookingPayments - repository error: %w", ErrInternal, err)
	}

	payments, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetBookingPayments: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetBookingPayments - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPaymentList(bookingID, payments), nil
}

func (s *Service) getPayment(ctx context.Context, op string, paymentID int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment id=%d not found", op, paymentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for payment id=%d: %v", op, paymentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return payment, nil
}
