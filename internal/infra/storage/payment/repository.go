package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var paymentColumns = []string{
	"id",
	"transaction_id",
	"booking_id",
	"amount",
	"currency",
	"method",
	"payment_type",
	"status",
	"gateway_response",
	"created_at",
	"processed_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый платёж в статусе pending.
// Коллизия transaction id возвращается как ErrDuplicateTransactionID.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"transaction_id",
			"booking_id",
			"amount",
			"currency",
			"method",
			"payment_type",
			"status",
			"gateway_response",
		).
		Values(
			payment.TransactionID,
			payment.BookingID,
			payment.Amount,
			payment.Currency,
			payment.Method,
			payment.Type,
			payment.Status,
			payment.GatewayResponse,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
	)

	if isUniqueViolation(err, "payments_transaction_id_key") {
		return nil, ErrDuplicateTransactionID
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time

	return payment, nil
}

// GetByID получает платёж по ID
// В транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %w", ErrScanRow, err)
	}

	return payment, nil
}

// GetByBookingID получает все платежи бронирования.
// В транзакции строки блокируются (FOR UPDATE): пересчёт агрегатного статуса
// оплаты не должен терять конкурентные обновления платежей.
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %w", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}

// MarkCompleted переводит платёж в completed и проставляет processed_at.
// Guard по статусу в WHERE: финальные платежи не перезаписываются.
func (r *Repository) MarkCompleted(ctx context.Context, id int64, gatewayResponse []byte) error {
	builder := psqlbuilder.Update("payments").
		Set("status", domain.PaymentCompleted).
		Set("processed_at", squirrel.Expr("NOW()"))

	if gatewayResponse != nil {
		builder = builder.Set("gateway_response", gatewayResponse)
	}

	return r.markProcessed(ctx, "MarkCompleted", id, builder)
}

// MarkFailed переводит платёж в failed и проставляет processed_at.
// Агрегатный статус оплаты бронирования не трогаем.
func (r *Repository) MarkFailed(ctx context.Context, id int64, gatewayResponse []byte) error {
	builder := psqlbuilder.Update("payments").
		Set("status", domain.PaymentFailed).
		Set("processed_at", squirrel.Expr("NOW()"))

	if gatewayResponse != nil {
		builder = builder.Set("gateway_response", gatewayResponse)
	}

	return r.markProcessed(ctx, "MarkFailed", id, builder)
}

func (r *Repository) markProcessed(ctx context.Context, op string, id int64, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	processableStatuses := []string{
		string(domain.PaymentPending),
		string(domain.PaymentProcessing),
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": processableStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrNotProcessable
	}

	return nil
}

func scanPayment(row interface{ Scan(dest ...interface{}) error }) (*domain.Payment, error) {
	var payment domain.Payment
	var createdAt sql.NullTime
	var gatewayResponse []byte

	err := row.Scan(
		&payment.ID,
		&payment.TransactionID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.Type,
		&payment.Status,
		&gatewayResponse,
		&createdAt,
		&payment.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.GatewayResponse = gatewayResponse
	payment.CreatedAt = createdAt.Time

	return &payment, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
	}
	return false
}
