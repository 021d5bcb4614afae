package complete_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/payment"
)

// UseCase use case для завершения платежа с пересчетом оплаты бронирования
type UseCase struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case завершения платежа.
// Перевод платежа в completed и пересчет payment_status бронирования
// выполняются в одной сериализуемой транзакции: агрегат никогда не
// расходится с суммой завершенных платежей.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompletePayment: payment=%d", req.PaymentID)

	// 1. Валидация входных данных
	if req.PaymentID <= 0 {
		return nil, fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}

	var (
		payment *domain.Payment
		booking *domain.Booking
		paid    decimal.Decimal
		status  domain.BookingPaymentStatus
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем платеж с блокировкой (FOR UPDATE)
		var err error
		payment, err = uc.paymentRepo.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Warn("CompletePayment: payment id=%d not found", req.PaymentID)
				return ErrPaymentNotFound
			}
			uc.logger.Error("CompletePayment: failed to get payment id=%d: %v", req.PaymentID, err)
			return fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
		}

		// 2.2. Проверяем, что платеж еще не обработан
		if !payment.CanBeProcessed() {
			uc.logger.Warn("CompletePayment: payment id=%d has status %s", payment.ID, payment.Status)
			return ErrNotProcessable
		}

		// 2.3. Переводим платеж в completed
		if err := uc.paymentRepo.MarkCompleted(txCtx, payment.ID, req.GatewayResponse); err != nil {
			if errors.Is(err, paymentRepo.ErrNotProcessable) {
				return ErrNotProcessable
			}
			uc.logger.Error("CompletePayment: failed to mark payment id=%d completed: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to complete payment: %w", ErrInternal, err)
		}
		payment.Status = domain.PaymentCompleted

		// 2.4. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err = uc.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			uc.logger.Error("CompletePayment: failed to get booking id=%d: %v", payment.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.5. Пересчитываем агрегат из всех завершенных платежей
		payments, err := uc.paymentRepo.GetByBookingID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("CompletePayment: failed to get payments for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get payments: %w", ErrInternal, err)
		}

		paid = domain.SumCompleted(payments)
		status = domain.DerivePaymentStatus(booking.TotalPrice, paid)

		if status != booking.PaymentStatus {
			if err := uc.bookingRepo.UpdatePaymentStatus(txCtx, booking.ID, status); err != nil {
				uc.logger.Error("CompletePayment: failed to update payment status for booking=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update payment status: %w", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompletePayment: payment=%d completed, booking=%d is now %s (paid %s of %s)",
		payment.ID, booking.ID, status, paid.StringFixed(2), booking.TotalPrice.StringFixed(2))

	// 3. Отправляем событие после фиксации транзакции
	if err := uc.notifier.Send(ctx, domain.Event{
		Type:             domain.EventPaymentCompleted,
		BookingReference: booking.Reference,
		UserID:           booking.UserID,
		TourID:           booking.TourID,
		TransactionID:    &payment.TransactionID,
		OccurredAt:       uc.timeProvider.Now(),
	}); err != nil {
		uc.logger.Warn("CompletePayment: failed to send event for payment=%d: %v", payment.ID, err)
	}

	remaining := booking.TotalPrice.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	// Конвертируем в response
	return &Response{
		PaymentID:            payment.ID,
		TransactionID:        payment.TransactionID,
		BookingID:            booking.ID,
		Amount:               payment.Amount.StringFixed(2),
		Currency:             payment.Currency,
		Status:               string(payment.Status),
		BookingPaymentStatus: string(status),
		TotalPaid:            paid.StringFixed(2),
		AmountRemaining:      remaining.StringFixed(2),
	}, nil
}
