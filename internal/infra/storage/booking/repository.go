package booking

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

// pgUniqueViolation код ошибки postgres при нарушении уникальности
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"token",
	"reference",
	"user_id",
	"tour_id",
	"participants",
	"status",
	"payment_status",
	"total_price",
	"currency",
	"contact_name",
	"contact_email",
	"contact_phone",
	"special_requests",
	"cancellation_reason",
	"cancelled_by",
	"created_at",
	"updated_at",
	"confirmed_at",
	"cancelled_at",
	"completed_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается usecase-ом создания внутри сериализуемой транзакции: проверка
// вместимости и вставка должны быть одной атомарной единицей.
// Коллизия booking reference возвращается как ErrDuplicateReference.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"token",
			"reference",
			"user_id",
			"tour_id",
			"participants",
			"status",
			"payment_status",
			"total_price",
			"currency",
			"contact_name",
			"contact_email",
			"contact_phone",
			"special_requests",
		).
		Values(
			booking.Token,
			booking.Reference,
			booking.UserID,
			booking.TourID,
			booking.Participants,
			booking.Status,
			booking.PaymentStatus,
			booking.TotalPrice,
			booking.Currency,
			booking.ContactName,
			booking.ContactEmail,
			booking.ContactPhone,
			booking.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err, "bookings_reference_key") {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// AddParticipants сохраняет данные путешественников бронирования.
// Вызывается в той же транзакции, что и Create.
func (r *Repository) AddParticipants(ctx context.Context, bookingID int64, participants []*domain.BookingParticipant) error {
	if len(participants) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_participants").
		Columns(
			"booking_id",
			"full_name",
			"email",
			"phone",
			"passport_number",
			"dietary_notes",
			"medical_notes",
		)

	for _, p := range participants {
		insertBuilder = insertBuilder.Values(
			bookingID,
			p.FullName,
			p.Email,
			p.Phone,
			p.PassportNumber,
			p.DietaryNotes,
			p.MedicalNotes,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddParticipants - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddParticipants - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetParticipants получает путешественников бронирования
func (r *Repository) GetParticipants(ctx context.Context, bookingID int64) ([]*domain.BookingParticipant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"full_name",
		"email",
		"phone",
		"passport_number",
		"dietary_notes",
		"medical_notes",
	).
		From("booking_participants").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetParticipants - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetParticipants - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	participants := make([]*domain.BookingParticipant, 0)
	for rows.Next() {
		var p domain.BookingParticipant
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.FullName,
			&p.Email,
			&p.Phone,
			&p.PassportNumber,
			&p.DietaryNotes,
			&p.MedicalNotes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetParticipants - scan row: %w", ErrScanRow, err)
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetParticipants - rows error: %w", ErrScanRow, err)
	}

	return participants, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByField(ctx, squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по человекочитаемому reference
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getByField(ctx, squirrel.Eq{"reference": reference})
}

func (r *Repository) getByField(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	// В транзакции блокируем строку: статусные переходы и пересчёт
	// payment_status не должны терять обновления друг друга
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByField - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByField - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByTour получает активные (pending/confirmed) бронирования тура.
// Результат — вход для подсчёта занятых мест.
// В транзакции строки блокируются (FOR UPDATE): два конкурентных создания
// бронирования на последние места не должны пройти оба.
func (r *Repository) GetActiveByTour(ctx context.Context, tourID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tour_id": tourID}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTour - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTour - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByTourWithFilter получает бронирования тура с фильтрацией по статусу
// и включению неактивных. Используется стафф-эндпоинтами организатора.
func (r *Repository) GetByTourWithFilter(ctx context.Context, filter domain.TourBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tour_id": filter.TourID}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTourWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTourWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm переводит бронирование pending -> confirmed и проставляет confirmed_at.
// Guard по статусу в WHERE: конкурентный повторный confirm не пройдёт.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	return r.guardedUpdate(ctx, "Confirm", psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("confirmed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}))
}

// Cancel переводит бронирование в cancelled с причиной и актором отмены
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, cancelledBy int64) error {
	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	return r.guardedUpdate(ctx, "Cancel", psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_by", cancelledBy).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": activeStatusStrings}))
}

// Complete переводит бронирование confirmed -> completed
func (r *Repository) Complete(ctx context.Context, id int64) error {
	return r.guardedUpdate(ctx, "Complete", psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("completed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}))
}

// UpdatePaymentStatus записывает пересчитанный агрегатный статус оплаты.
// Единственный вызывающий — пересчёт в payment ledger.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.BookingPaymentStatus) error {
	return r.guardedUpdate(ctx, "UpdatePaymentStatus", psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *Repository) guardedUpdate(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
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
		return ErrBookingNotFound
	}

	return nil
}

func scanBooking(row interface{ Scan(dest ...interface{}) error }) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Token,
		&booking.Reference,
		&booking.UserID,
		&booking.TourID,
		&booking.Participants,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.TotalPrice,
		&booking.Currency,
		&booking.ContactName,
		&booking.ContactEmail,
		&booking.ContactPhone,
		&booking.SpecialRequests,
		&booking.CancellationReason,
		&booking.CancelledBy,
		&createdAt,
		&updatedAt,
		&booking.ConfirmedAt,
		&booking.CancelledAt,
		&booking.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
	}
	return false
}
