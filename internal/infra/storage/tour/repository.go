package tour

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

var tourColumns = []string{
	"id",
	"destination_id",
	"organizer_id",
	"title",
	"description",
	"max_participants",
	"available_from",
	"available_until",
	"price_per_person",
	"currency",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом туров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория туров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тур
func (r *Repository) Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tours").
		Columns(
			"destination_id",
			"organizer_id",
			"title",
			"description",
			"max_participants",
			"available_from",
			"available_until",
			"price_per_person",
			"currency",
			"is_active",
		).
		Values(
			tour.DestinationID,
			tour.OrganizerID,
			tour.Title,
			tour.Description,
			tour.MaxParticipants,
			tour.AvailableFrom,
			tour.AvailableUntil,
			tour.PricePerPerson,
			tour.Currency,
			tour.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tour.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	tour.CreatedAt = createdAt.Time
	tour.UpdatedAt = updatedAt.Time

	return tour, nil
}

// GetByID получает тур по ID
// В транзакции блокирует строку тура (FOR UPDATE) — используется usecase-ом
// создания бронирования как точка сериализации проверки вместимости.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(tourColumns...).
		From("tours").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	tour, err := r.scanTour(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tour: %w", ErrScanRow, err)
	}

	return tour, nil
}

// ListActive получает все активные туры, отсортированные по дате начала
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Tour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tourColumns...).
		From("tours").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("available_from ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	tours := make([]*domain.Tour, 0)
	for rows.Next() {
		tour, err := r.scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %w", ErrScanRow, err)
		}
		tours = append(tours, tour)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}

	return tours, nil
}

// Update обновляет изменяемые поля тура
func (r *Repository) Update(ctx context.Context, tour *domain.Tour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tours").
		Set("title", tour.Title).
		Set("description", tour.Description).
		Set("max_participants", tour.MaxParticipants).
		Set("available_from", tour.AvailableFrom).
		Set("available_until", tour.AvailableUntil).
		Set("price_per_person", tour.PricePerPerson).
		Set("currency", tour.Currency).
		Set("is_active", tour.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tour.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTourNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTour(row rowScanner) (*domain.Tour, error) {
	var tour domain.Tour
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&tour.ID,
		&tour.DestinationID,
		&tour.OrganizerID,
		&tour.Title,
		&tour.Description,
		&tour.MaxParticipants,
		&tour.AvailableFrom,
		&tour.AvailableUntil,
		&tour.PricePerPerson,
		&tour.Currency,
		&tour.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tour.CreatedAt = createdAt.Time
	tour.UpdatedAt = updatedAt.Time

	return &tour, nil
}
